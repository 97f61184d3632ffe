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
	CreateUserCommand struct {
		Input model.UserInput
	}

	CreateUserCommandHandler = decorator.CommandHandler[CreateUserCommand, *model.User]

	createUserCommandHandler struct {
		usersService ports.UsersService
		cache        ports.UsersCache
		logger       logger.Logger
	}
)

// NewCreateUserCommandHandler builds the handler. cache may be nil.
func NewCreateUserCommandHandler(
	svc ports.UsersService,
	cache ports.UsersCache,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) CreateUserCommandHandler {
	return decorator.ApplyCommandDecorators[CreateUserCommand, *model.User](
		createUserCommandHandler{usersService: svc, cache: cache, logger: log},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h createUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*model.User, error) {
	email, groupID, err := cmd.Input.Validate()
	if err != nil {
		return nil, err
	}

	user, err := h.usersService.CreateUser(ctx, email, groupID)
	if err != nil {
		return nil, err
	}

	invalidateFindResults(ctx, h.cache, h.logger)

	return user, nil
}
