package usecases

import (
	"github.com/architeacher/users/pkg/decorator"
	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/pkg/metrics"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/ports"
	"github.com/architeacher/users/services/svc-users/internal/usecases/commands"
	"github.com/architeacher/users/services/svc-users/internal/usecases/queries"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Commands struct {
		CreateUser  commands.CreateUserCommandHandler
		UpdateUser  commands.UpdateUserCommandHandler
		DeleteUser  commands.DeleteUserCommandHandler
		CreateGroup commands.CreateGroupCommandHandler
	}

	Queries struct {
		FindUsers         queries.FindUsersQueryHandler
		GetUser           queries.GetUserQueryHandler
		FetchHealthReport queries.FetchHealthReportQueryHandler
	}

	Application struct {
		Commands Commands
		Queries  Queries
	}

	// FindUsersCaching enables cached searches. A nil Cache disables caching
	// and write invalidation.
	FindUsersCaching struct {
		Cache       decorator.Cache[queries.FindUsersQuery, []*model.User]
		Invalidator ports.UsersCache
		Config      decorator.CacheConfig
	}
)

func NewApplication(
	usersSvc ports.UsersService,
	healthChecker ports.HealthChecker,
	caching FindUsersCaching,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) *Application {
	findUsers := queries.NewFindUsersQueryHandler(usersSvc, log, metricsClient, tracerProvider)
	if caching.Cache != nil {
		findUsers = queries.NewFindUsersQueryHandlerWithCache(
			usersSvc, caching.Cache, caching.Config, log, metricsClient, tracerProvider,
		)
	}

	return &Application{
		Commands: Commands{
			CreateUser:  commands.NewCreateUserCommandHandler(usersSvc, caching.Invalidator, log, metricsClient, tracerProvider),
			UpdateUser:  commands.NewUpdateUserCommandHandler(usersSvc, caching.Invalidator, log, metricsClient, tracerProvider),
			DeleteUser:  commands.NewDeleteUserCommandHandler(usersSvc, caching.Invalidator, log, metricsClient, tracerProvider),
			CreateGroup: commands.NewCreateGroupCommandHandler(usersSvc, log, metricsClient, tracerProvider),
		},
		Queries: Queries{
			FindUsers:         findUsers,
			GetUser:           queries.NewGetUserQueryHandler(usersSvc, log, metricsClient, tracerProvider),
			FetchHealthReport: queries.NewFetchHealthReportQueryHandler(healthChecker, log, metricsClient, tracerProvider),
		},
	}
}
