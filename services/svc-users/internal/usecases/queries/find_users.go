package queries

import (
	"context"

	"github.com/architeacher/users/pkg/decorator"
	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/pkg/metrics"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/ports"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	FindUsersQuery struct {
		Spec model.FilterSpec
	}

	FindUsersQueryHandler = decorator.QueryHandler[FindUsersQuery, []*model.User]

	findUsersQueryHandler struct {
		usersService ports.UsersService
	}
)

func NewFindUsersQueryHandler(
	svc ports.UsersService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) FindUsersQueryHandler {
	return decorator.ApplyQueryDecorators[FindUsersQuery, []*model.User](
		findUsersQueryHandler{usersService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

// NewFindUsersQueryHandlerWithCache serves repeated searches from cache.
func NewFindUsersQueryHandlerWithCache(
	svc ports.UsersService,
	cache decorator.Cache[FindUsersQuery, []*model.User],
	cacheConfig decorator.CacheConfig,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) FindUsersQueryHandler {
	return decorator.NewQueryCachingDecorator(
		NewFindUsersQueryHandler(svc, log, metricsClient, tracerProvider),
		cache,
		cacheConfig,
		log,
	)
}

func (h findUsersQueryHandler) Execute(ctx context.Context, query FindUsersQuery) ([]*model.User, error) {
	return h.usersService.FindUsers(ctx, query.Spec)
}
