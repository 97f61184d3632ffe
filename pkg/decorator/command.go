package decorator

import (
	"context"
	"fmt"
	"strings"

	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Command any

	CommandHandler[C Command, R any] interface {
		Handle(context.Context, C) (R, error)
	}

	// CommandHandlerFunc adapts a plain function to CommandHandler.
	CommandHandlerFunc[C Command, R any] func(ctx context.Context, cmd C) (R, error)
)

func (f CommandHandlerFunc[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}

func ApplyCommandDecorators[C Command, R any](
	handler CommandHandler[C, R],
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) CommandHandler[C, R] {
	return commandLoggingDecorator[C, R]{
		base: commandMetricsDecorator[C, R]{
			base: commandTracingDecorator[C, R]{
				base:           handler,
				tracerProvider: tracerProvider,
			},
			client: metricsClient,
		},
		logger: log,
	}
}

// generateActionName returns the unqualified type name of a query or command,
// e.g. "FindUsersQuery".
func generateActionName(action any) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", action), "*")
	if index := strings.LastIndex(name, "."); index >= 0 {
		return name[index+1:]
	}

	return name
}
