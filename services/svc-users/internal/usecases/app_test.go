package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/architeacher/users/pkg/decorator"
	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/pkg/metrics/noop"
	"github.com/architeacher/users/services/svc-users/internal/adapters/repos"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/mocks"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/architeacher/users/services/svc-users/internal/usecases/commands"
	"github.com/architeacher/users/services/svc-users/internal/usecases/queries"
	"github.com/stretchr/testify/require"
	otelNoop "go.opentelemetry.io/otel/trace/noop"
)

type staticHealth struct{}

func (staticHealth) Health(context.Context) (*model.HealthReport, error) {
	return &model.HealthReport{Status: model.HealthStatusOK}, nil
}

func newApplication(svc *mocks.FakeUsersService, cache *mocks.FakeUsersCache) *usecases.Application {
	caching := usecases.FindUsersCaching{}
	if cache != nil {
		caching = usecases.FindUsersCaching{
			Cache:       repos.NewFindUsersCacheAdapter(cache),
			Invalidator: cache,
			Config:      decorator.CacheConfig{Enabled: true, TTL: time.Minute, SyncWrites: true},
		}
	}

	return usecases.NewApplication(
		svc,
		staticHealth{},
		caching,
		logger.NewTestLogger(),
		noop.NewMetricsClient(),
		otelNoop.NewTracerProvider(),
	)
}

func TestApplication_FindUsersIsCachedPerCriteria(t *testing.T) {
	t.Parallel()

	svc := &mocks.FakeUsersService{
		FindUsersStub: func(context.Context, model.FilterSpec) ([]*model.User, error) {
			return []*model.User{model.NewUser("jane@example.com", model.NewGroup("eng"))}, nil
		},
	}
	cache := mocks.NewFakeUsersCache()
	app := newApplication(svc, cache)

	from := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	query := queries.FindUsersQuery{Spec: model.NewFilterSpec(
		model.WithGroupName("eng"),
		model.WithCreatedAt(model.DateRangeFrom(from)),
	)}

	first, err := app.Queries.FindUsers.Execute(context.Background(), query)
	require.NoError(t, err)

	second, err := app.Queries.FindUsers.Execute(context.Background(), query)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, svc.FindUsersCallCount())
	require.Equal(t, 1, cache.Len())

	_, err = app.Queries.FindUsers.Execute(context.Background(), queries.FindUsersQuery{Spec: model.NewFilterSpec()})
	require.NoError(t, err)
	require.Equal(t, 2, svc.FindUsersCallCount())
	require.Equal(t, 2, cache.Len())
}

func TestApplication_WritesInvalidateCachedSearches(t *testing.T) {
	t.Parallel()

	svc := &mocks.FakeUsersService{
		FindUsersStub: func(context.Context, model.FilterSpec) ([]*model.User, error) {
			return []*model.User{}, nil
		},
		CreateUserStub: func(_ context.Context, email string, _ *model.GroupID) (*model.User, error) {
			return model.NewUser(email, nil), nil
		},
	}
	cache := mocks.NewFakeUsersCache()
	app := newApplication(svc, cache)

	_, err := app.Queries.FindUsers.Execute(context.Background(), queries.FindUsersQuery{Spec: model.NewFilterSpec()})
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	_, err = app.Commands.CreateUser.Handle(context.Background(), commands.CreateUserCommand{
		Input: model.UserInput{Email: "john@example.com"},
	})
	require.NoError(t, err)
	require.Zero(t, cache.Len())

	_, err = app.Queries.FindUsers.Execute(context.Background(), queries.FindUsersQuery{Spec: model.NewFilterSpec()})
	require.NoError(t, err)
	require.Equal(t, 2, svc.FindUsersCallCount())
}

func TestApplication_WithoutCache(t *testing.T) {
	t.Parallel()

	svc := &mocks.FakeUsersService{}
	app := newApplication(svc, nil)

	for range 2 {
		_, err := app.Queries.FindUsers.Execute(context.Background(), queries.FindUsersQuery{Spec: model.NewFilterSpec()})
		require.NoError(t, err)
	}

	require.Equal(t, 2, svc.FindUsersCallCount())

	report, err := app.Queries.FetchHealthReport.Execute(context.Background(), queries.FetchHealthReportQuery{})
	require.NoError(t, err)
	require.Equal(t, model.HealthStatusOK, report.Status)
}
