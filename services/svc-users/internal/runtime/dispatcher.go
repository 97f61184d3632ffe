package runtime

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/services/svc-users/internal/config"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
)

const defaultShutdownTimeout = 10 * time.Second

var ErrNotBuilt = errors.New("service dependencies are not built")

// ServiceCtx owns the dependency graph for one CLI invocation.
type ServiceCtx struct {
	deps            *dependencies
	dependencyOpts  []DependencyOption
	skipDefaults    bool
	shutdownTimeout time.Duration
}

func New(opts ...ServiceOption) *ServiceCtx {
	ctx := &ServiceCtx{
		shutdownTimeout: defaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(ctx)
	}

	return ctx
}

// Run builds the dependencies, runs fn until it returns or the process is
// interrupted, then releases every resource.
func (c *ServiceCtx) Run(ctx context.Context, fn func(ctx context.Context, app *usecases.Application) error) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := c.build(ctx); err != nil {
		return err
	}
	defer c.shutdown()

	return fn(ctx, c.deps.app)
}

func (c *ServiceCtx) Logger() logger.Logger {
	if c.deps == nil {
		return logger.Logger{}
	}

	return c.deps.infra.logger
}

func (c *ServiceCtx) Config() *config.ServiceConfig {
	if c.deps == nil {
		return nil
	}

	return c.deps.config
}

func (c *ServiceCtx) build(ctx context.Context) error {
	var err error

	if c.skipDefaults {
		deps := newDependencies()
		if err = deps.apply(c.dependencyOpts...); err != nil {
			deps.cleanup(ctx)

			return fmt.Errorf("initializing dependencies: %w", err)
		}

		c.deps = deps
	} else {
		c.deps, err = initializeDependencies(ctx, c.dependencyOpts...)
		if err != nil {
			return fmt.Errorf("initializing dependencies: %w", err)
		}
	}

	if c.deps.app == nil {
		c.deps.cleanup(ctx)

		return ErrNotBuilt
	}

	return nil
}

func (c *ServiceCtx) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.shutdownTimeout)
	defer cancel()

	c.deps.infra.logger.Debug().Msg("cleaning up resources...")

	c.deps.cleanup(shutdownCtx)

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		c.deps.infra.logger.Error().Msg("graceful shutdown timed out")
	}
}
