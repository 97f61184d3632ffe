package commands

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
	DeleteUserCommand struct {
		ID model.UserID
	}

	DeleteUserResult struct {
		Success bool
	}

	DeleteUserCommandHandler = decorator.CommandHandler[DeleteUserCommand, DeleteUserResult]

	deleteUserCommandHandler struct {
		usersService ports.UsersService
		cache        ports.UsersCache
		logger       logger.Logger
	}
)

func NewDeleteUserCommandHandler(
	svc ports.UsersService,
	cache ports.UsersCache,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) DeleteUserCommandHandler {
	return decorator.ApplyCommandDecorators[DeleteUserCommand, DeleteUserResult](
		deleteUserCommandHandler{usersService: svc, cache: cache, logger: log},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h deleteUserCommandHandler) Handle(ctx context.Context, cmd DeleteUserCommand) (DeleteUserResult, error) {
	if err := h.usersService.DeleteUser(ctx, cmd.ID); err != nil {
		return DeleteUserResult{Success: false}, err
	}

	invalidateFindResults(ctx, h.cache, h.logger)

	return DeleteUserResult{Success: true}, nil
}
