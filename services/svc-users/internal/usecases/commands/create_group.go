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
	CreateGroupCommand struct {
		Name string
	}

	CreateGroupCommandHandler = decorator.CommandHandler[CreateGroupCommand, *model.Group]

	createGroupCommandHandler struct {
		usersService ports.UsersService
	}
)

func NewCreateGroupCommandHandler(
	svc ports.UsersService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) CreateGroupCommandHandler {
	return decorator.ApplyCommandDecorators[CreateGroupCommand, *model.Group](
		createGroupCommandHandler{usersService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h createGroupCommandHandler) Handle(ctx context.Context, cmd CreateGroupCommand) (*model.Group, error) {
	name, err := model.ValidateGroupName(cmd.Name)
	if err != nil {
		return nil, err
	}

	return h.usersService.CreateGroup(ctx, name)
}
