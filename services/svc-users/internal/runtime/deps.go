package runtime

import (
	"context"
	"fmt"

	"github.com/architeacher/users/pkg/circuitbreaker"
	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/pkg/metrics"
	"github.com/architeacher/users/services/svc-users/internal/config"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/infrastructure"
	"github.com/architeacher/users/services/svc-users/internal/ports"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/jackc/pgx/v5/pgxpool"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	infrastructureDep struct {
		logger         logger.Logger
		metricsClient  metrics.Client
		tracerProvider otelTrace.TracerProvider
		dbPool         *pgxpool.Pool
		cacheClient    *infrastructure.KeydbClient
	}

	repositories struct {
		secretsRepo ports.SecretsRepository
		usersRepo   ports.UsersRepository
		usersCache  ports.UsersCache
		dbPinger    ports.Pinger
	}

	servicesDep struct {
		breaker       *circuitbreaker.CircuitBreaker[[]*model.User]
		users         ports.UsersService
		healthChecker ports.HealthChecker
	}

	dependencies struct {
		config        *config.ServiceConfig
		secretVersion uint

		infra infrastructureDep

		repos repositories

		services servicesDep

		app *usecases.Application

		cleanupFuncs map[string]func(ctx context.Context) error
	}

	DependencyOption func(*dependencies) error
)

func newDependencies() *dependencies {
	return &dependencies{
		cleanupFuncs: make(map[string]func(ctx context.Context) error),
	}
}

func initializeDependencies(ctx context.Context, opts ...DependencyOption) (*dependencies, error) {
	deps := newDependencies()

	allOpts := append(defaultOptions(ctx), opts...)

	if err := deps.apply(allOpts...); err != nil {
		deps.cleanup(ctx)

		return nil, err
	}

	return deps, nil
}

func (d *dependencies) apply(opts ...DependencyOption) error {
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	return nil
}

func (d *dependencies) cleanup(ctx context.Context) {
	for resource, cleanupFn := range d.cleanupFuncs {
		if err := cleanupFn(ctx); err != nil {
			d.infra.logger.Error().
				Err(err).
				Str("resource", resource).
				Msg("failed to shutdown the resource gracefully")
		}
	}
}
