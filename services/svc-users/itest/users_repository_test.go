//go:build integration

package itest

import (
	"context"
	"testing"
	"time"

	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/services/svc-users/internal/adapters/repos"
	"github.com/architeacher/users/services/svc-users/internal/config"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/runtime"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/architeacher/users/services/svc-users/internal/usecases/commands"
	"github.com/architeacher/users/services/svc-users/internal/usecases/queries"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "postgres:18-alpine"
	postgresDatabase = "users_test"
	postgresUsername = "test"
	postgresPassword = "test"

	schemaDDL = `
CREATE TABLE user_groups (
	id   UUID PRIMARY KEY,
	name VARCHAR(100) NOT NULL UNIQUE
);

CREATE TABLE users (
	id         UUID PRIMARY KEY,
	email      VARCHAR(254) NOT NULL UNIQUE,
	group_id   UUID REFERENCES user_groups (id) ON DELETE SET NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX idx_users_created_at ON users (created_at);
`
)

type UsersRepositoryIntegrationTestSuite struct {
	suite.Suite
	suiteCtx    context.Context
	suiteCancel context.CancelFunc
	container   *postgres.PostgresContainer
	pool        *pgxpool.Pool
	repo        *repos.UsersRepository
}

func TestUsersRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UsersRepositoryIntegrationTestSuite))
}

func (s *UsersRepositoryIntegrationTestSuite) SetupSuite() {
	s.suiteCtx, s.suiteCancel = context.WithTimeout(context.Background(), 5*time.Minute)

	container, err := postgres.Run(s.suiteCtx,
		postgresImage,
		postgres.WithDatabase(postgresDatabase),
		postgres.WithUsername(postgresUsername),
		postgres.WithPassword(postgresPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.suiteCtx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := pgxpool.New(s.suiteCtx, connStr)
	s.Require().NoError(err)
	s.pool = pool

	_, err = s.pool.Exec(s.suiteCtx, schemaDDL)
	s.Require().NoError(err)

	log := logger.NewTestLogger()
	s.repo = repos.NewUsersRepository(s.pool, repos.NewPgxScanner(), repos.NewCriteriaTranslator(&log), log)
}

func (s *UsersRepositoryIntegrationTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.suiteCtx)
	}
	if s.suiteCancel != nil {
		s.suiteCancel()
	}
}

func (s *UsersRepositoryIntegrationTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.T().Context(), "TRUNCATE TABLE users, user_groups")
	s.Require().NoError(err)
}

// seedUser inserts a user with a fixed creation time.
func (s *UsersRepositoryIntegrationTestSuite) seedUser(email string, group *model.Group, createdAt time.Time) *model.User {
	user := model.NewUser(email, group)
	user.CreatedAt = createdAt
	user.UpdatedAt = createdAt

	s.Require().NoError(s.repo.Create(s.T().Context(), user))

	return user
}

func (s *UsersRepositoryIntegrationTestSuite) seedGroup(name string) *model.Group {
	group := model.NewGroup(name)
	s.Require().NoError(s.repo.CreateGroup(s.T().Context(), group))

	return group
}

func emails(users []*model.User) []string {
	out := make([]string, 0, len(users))
	for _, user := range users {
		out = append(out, user.Email)
	}

	return out
}

func (s *UsersRepositoryIntegrationTestSuite) TestFind_CompiledFilters() {
	ctx := s.T().Context()

	eng := s.seedGroup("eng")
	ops := s.seedGroup("ops")

	dec2022 := time.Date(2022, time.December, 15, 0, 0, 0, 0, time.UTC)
	feb2023 := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	jun2023 := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)

	old := s.seedUser("old@example.com", eng, dec2022)
	newEng := s.seedUser("new-eng@example.com", eng, feb2023)
	s.seedUser("new-ops@example.com", ops, jun2023)
	s.seedUser("nogroup@example.com", nil, jun2023)

	from := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		spec     model.FilterSpec
		expected []string
	}{
		{
			name:     "empty filter returns everything newest first",
			spec:     model.NewFilterSpec(),
			expected: []string{"new-ops@example.com", "nogroup@example.com", "new-eng@example.com", "old@example.com"},
		},
		{
			name:     "by id",
			spec:     model.NewFilterSpec(model.WithID(old.ID.String())),
			expected: []string{"old@example.com"},
		},
		{
			name:     "by group name",
			spec:     model.NewFilterSpec(model.WithGroupName("eng")),
			expected: []string{"new-eng@example.com", "old@example.com"},
		},
		{
			name: "group and lower bound",
			spec: model.NewFilterSpec(
				model.WithGroupName("eng"),
				model.WithCreatedAt(model.DateRangeFrom(from)),
			),
			expected: []string{"new-eng@example.com"},
		},
		{
			name:     "upper bound only",
			spec:     model.NewFilterSpec(model.WithCreatedAt(model.DateRangeTo(from))),
			expected: []string{"old@example.com"},
		},
		{
			name:     "between bounds",
			spec:     model.NewFilterSpec(model.WithCreatedAt(model.DateRangeBetween(from, to))),
			expected: []string{"new-eng@example.com"},
		},
		{
			name:     "between is inclusive",
			spec:     model.NewFilterSpec(model.WithCreatedAt(model.DateRangeBetween(feb2023, feb2023))),
			expected: []string{"new-eng@example.com"},
		},
		{
			name:     "no matches",
			spec:     model.NewFilterSpec(model.WithGroupName("sales")),
			expected: []string{},
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			users, err := s.repo.Find(ctx, model.Compile(tc.spec), model.RelationGroup)
			s.Require().NoError(err)
			s.Require().Equal(tc.expected, emails(users))
		})
	}

	users, err := s.repo.Find(ctx, model.Compile(model.NewFilterSpec(model.WithID(newEng.ID.String()))), model.RelationGroup)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Require().Equal(&model.Group{ID: eng.ID, Name: "eng"}, users[0].Group)
}

func (s *UsersRepositoryIntegrationTestSuite) TestWrites() {
	ctx := s.T().Context()
	eng := s.seedGroup("eng")

	user := s.seedUser("jane@example.com", eng, time.Now().UTC().Truncate(time.Microsecond))

	s.Require().ErrorIs(s.repo.Create(ctx, model.NewUser("jane@example.com", nil)), model.ErrDuplicateUser)
	s.Require().ErrorIs(s.repo.CreateGroup(ctx, model.NewGroup("eng")), model.ErrDuplicateGroup)
	s.Require().ErrorIs(s.repo.Create(ctx, model.NewUser("ghost@example.com", model.NewGroup("ghost"))), model.ErrGroupNotFound)

	user.Update("jane.doe@example.com", nil)
	s.Require().NoError(s.repo.Update(ctx, user))

	fetched, err := s.repo.FetchByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Equal("jane.doe@example.com", fetched.Email)
	s.Require().Nil(fetched.Group)

	s.Require().NoError(s.repo.Delete(ctx, user.ID))
	s.Require().ErrorIs(s.repo.Delete(ctx, user.ID), model.ErrUserNotFound)

	_, err = s.repo.FetchByID(ctx, user.ID)
	s.Require().ErrorIs(err, model.ErrUserNotFound)

	group, err := s.repo.FetchGroupByID(ctx, eng.ID)
	s.Require().NoError(err)
	s.Require().Equal(eng, group)
}

func (s *UsersRepositoryIntegrationTestSuite) TestApplicationAgainstDatabase() {
	cfg := &config.ServiceConfig{
		App:     config.App{ServiceName: "svc-users", ServiceVersion: "itest"},
		Logging: config.Logging{Level: "error", Format: "json"},
	}

	svc := runtime.New(
		runtime.WithoutDefaultDependencies(),
		runtime.WithDependencyOptions(
			runtime.WithServiceConfig(cfg),
			runtime.WithLogger(),
			runtime.WithTracing(s.suiteCtx),
			runtime.WithMetrics(),
			runtime.WithDatabasePool(s.pool),
			runtime.WithUsersRepository(),
			runtime.WithCircuitBreaker(),
			runtime.WithUsersService(),
			runtime.WithHealthChecker(),
			runtime.WithApplication(),
		),
	)

	err := svc.Run(s.T().Context(), func(ctx context.Context, app *usecases.Application) error {
		group, err := app.Commands.CreateGroup.Handle(ctx, commands.CreateGroupCommand{Name: "eng"})
		s.Require().NoError(err)

		created, err := app.Commands.CreateUser.Handle(ctx, commands.CreateUserCommand{
			Input: model.UserInput{Email: "  Jane@Example.com ", GroupID: group.ID.String()},
		})
		s.Require().NoError(err)
		s.Require().Equal("jane@example.com", created.Email)

		spec, err := model.ParseFilterArgs(model.FilterArgs{GroupName: "eng", CreatedFrom: "2023-01-01"})
		s.Require().NoError(err)

		users, err := app.Queries.FindUsers.Execute(ctx, queries.FindUsersQuery{Spec: spec})
		s.Require().NoError(err)
		s.Require().Len(users, 1)
		s.Require().Equal(created.ID, users[0].ID)

		report, err := app.Queries.FetchHealthReport.Execute(ctx, queries.FetchHealthReportQuery{})
		s.Require().NoError(err)
		s.Require().Equal(model.HealthStatusOK, report.Status)
		s.Require().Equal(model.DependencyStatusUp, report.Checks["postgres"].Status)

		return nil
	})
	s.Require().NoError(err)
}
