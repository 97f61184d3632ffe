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
	UpdateUserCommand struct {
		ID    model.UserID
		Input model.UserInput
	}

	UpdateUserCommandHandler = decorator.CommandHandler[UpdateUserCommand, *model.User]

	updateUserCommandHandler struct {
		usersService ports.UsersService
		cache        ports.UsersCache
		logger       logger.Logger
	}
)

func NewUpdateUserCommandHandler(
	svc ports.UsersService,
	cache ports.UsersCache,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) UpdateUserCommandHandler {
	return decorator.ApplyCommandDecorators[UpdateUserCommand, *model.User](
		updateUserCommandHandler{usersService: svc, cache: cache, logger: log},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h updateUserCommandHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*model.User, error) {
	email, groupID, err := cmd.Input.Validate()
	if err != nil {
		return nil, err
	}

	user, err := h.usersService.UpdateUser(ctx, cmd.ID, email, groupID)
	if err != nil {
		return nil, err
	}

	invalidateFindResults(ctx, h.cache, h.logger)

	return user, nil
}
