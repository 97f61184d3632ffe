package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/architeacher/users/pkg/circuitbreaker"
	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/services"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	findFn        func(ctx context.Context, criteria model.QueryCriteria, relations ...model.Relation) ([]*model.User, error)
	users         map[model.UserID]*model.User
	groups        map[model.GroupID]*model.Group
	createErr     error
	findCalls     int
	lastCriteria  model.QueryCriteria
	lastRelations []model.Relation
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:  make(map[model.UserID]*model.User),
		groups: make(map[model.GroupID]*model.Group),
	}
}

func (m *mockRepository) Find(ctx context.Context, criteria model.QueryCriteria, relations ...model.Relation) ([]*model.User, error) {
	m.findCalls++
	m.lastCriteria = criteria
	m.lastRelations = relations

	if m.findFn != nil {
		return m.findFn(ctx, criteria, relations...)
	}

	return []*model.User{}, nil
}

func (m *mockRepository) FetchByID(_ context.Context, id model.UserID) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}

	return user, nil
}

func (m *mockRepository) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}

	m.users[user.ID] = user

	return nil
}

func (m *mockRepository) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return model.ErrUserNotFound
	}

	m.users[user.ID] = user

	return nil
}

func (m *mockRepository) Delete(_ context.Context, id model.UserID) error {
	if _, ok := m.users[id]; !ok {
		return model.ErrUserNotFound
	}

	delete(m.users, id)

	return nil
}

func (m *mockRepository) CreateGroup(_ context.Context, group *model.Group) error {
	m.groups[group.ID] = group

	return nil
}

func (m *mockRepository) FetchGroupByID(_ context.Context, id model.GroupID) (*model.Group, error) {
	group, ok := m.groups[id]
	if !ok {
		return nil, model.ErrGroupNotFound
	}

	return group, nil
}

func TestUsersService_FindUsers(t *testing.T) {
	t.Parallel()

	repo := newMockRepository()
	svc := services.NewUsersService(repo, logger.NewTestLogger())

	from := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	spec := model.NewFilterSpec(
		model.WithGroupName("eng"),
		model.WithCreatedAt(model.DateRangeFrom(from)),
	)

	users, err := svc.FindUsers(context.Background(), spec)

	require.NoError(t, err)
	require.Empty(t, users)
	require.Equal(t, model.Compile(spec), repo.lastCriteria)
	require.Equal(t, []model.Relation{model.RelationGroup}, repo.lastRelations)
}

func TestUsersService_FindUsers_CircuitBreaker(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection refused")

	repo := newMockRepository()
	repo.findFn = func(context.Context, model.QueryCriteria, ...model.Relation) ([]*model.User, error) {
		return nil, dbErr
	}

	cb := circuitbreaker.New[[]*model.User](circuitbreaker.Config{
		Name:             "users-db",
		Enabled:          true,
		Timeout:          time.Minute,
		FailureThreshold: 2,
	})
	svc := services.NewUsersService(repo, logger.NewTestLogger(), services.WithCircuitBreaker(cb))

	for range 2 {
		_, err := svc.FindUsers(context.Background(), model.NewFilterSpec())
		require.ErrorIs(t, err, dbErr)
	}

	_, err := svc.FindUsers(context.Background(), model.NewFilterSpec())

	require.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	require.Equal(t, 2, repo.findCalls)
	require.Equal(t, "open", cb.State())
}

func TestUsersService_CreateUser(t *testing.T) {
	t.Parallel()

	group := model.NewGroup("eng")
	missing := model.NewGroupID()

	cases := []struct {
		name        string
		groupID     *model.GroupID
		createErr   error
		expectedErr error
		expectGroup bool
	}{
		{
			name: "without group",
		},
		{
			name:        "with existing group",
			groupID:     &group.ID,
			expectGroup: true,
		},
		{
			name:        "unknown group",
			groupID:     &missing,
			expectedErr: model.ErrGroupNotFound,
		},
		{
			name:        "duplicate email",
			createErr:   model.ErrDuplicateUser,
			expectedErr: model.ErrDuplicateUser,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := newMockRepository()
			repo.groups[group.ID] = group
			repo.createErr = tc.createErr

			svc := services.NewUsersService(repo, logger.NewTestLogger())

			user, err := svc.CreateUser(context.Background(), "jane@example.com", tc.groupID)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				require.Empty(t, repo.users)

				return
			}

			require.NoError(t, err)
			require.Equal(t, "jane@example.com", user.Email)
			require.Contains(t, repo.users, user.ID)

			if tc.expectGroup {
				require.Equal(t, group, user.Group)
			} else {
				require.Nil(t, user.Group)
			}
		})
	}
}

func TestUsersService_UpdateUser(t *testing.T) {
	t.Parallel()

	repo := newMockRepository()
	group := model.NewGroup("ops")
	repo.groups[group.ID] = group

	existing := model.NewUser("jane@example.com", nil)
	repo.users[existing.ID] = existing

	svc := services.NewUsersService(repo, logger.NewTestLogger())

	updated, err := svc.UpdateUser(context.Background(), existing.ID, "jane.doe@example.com", &group.ID)
	require.NoError(t, err)
	require.Equal(t, "jane.doe@example.com", updated.Email)
	require.Equal(t, group, updated.Group)

	_, err = svc.UpdateUser(context.Background(), model.NewUserID(), "x@example.com", nil)
	require.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUsersService_DeleteUser(t *testing.T) {
	t.Parallel()

	repo := newMockRepository()
	existing := model.NewUser("jane@example.com", nil)
	repo.users[existing.ID] = existing

	svc := services.NewUsersService(repo, logger.NewTestLogger())

	require.NoError(t, svc.DeleteUser(context.Background(), existing.ID))
	require.ErrorIs(t, svc.DeleteUser(context.Background(), existing.ID), model.ErrUserNotFound)
}

func TestUsersService_GetUserAndCreateGroup(t *testing.T) {
	t.Parallel()

	repo := newMockRepository()
	svc := services.NewUsersService(repo, logger.NewTestLogger())

	group, err := svc.CreateGroup(context.Background(), "eng")
	require.NoError(t, err)
	require.Equal(t, "eng", group.Name)
	require.Contains(t, repo.groups, group.ID)

	created, err := svc.CreateUser(context.Background(), "jane@example.com", &group.ID)
	require.NoError(t, err)

	fetched, err := svc.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created, fetched)
}
