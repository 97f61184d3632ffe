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
	GetUserQuery struct {
		ID model.UserID
	}

	GetUserQueryHandler = decorator.QueryHandler[GetUserQuery, *model.User]

	getUserQueryHandler struct {
		usersService ports.UsersService
	}
)

func NewGetUserQueryHandler(
	svc ports.UsersService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) GetUserQueryHandler {
	return decorator.ApplyQueryDecorators[GetUserQuery, *model.User](
		getUserQueryHandler{usersService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h getUserQueryHandler) Execute(ctx context.Context, query GetUserQuery) (*model.User, error) {
	return h.usersService.GetUser(ctx, query.ID)
}
