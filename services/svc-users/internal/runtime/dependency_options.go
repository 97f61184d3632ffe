package runtime

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	"github.com/architeacher/users/pkg/circuitbreaker"
	"github.com/architeacher/users/pkg/decorator"
	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/pkg/metrics/noop"
	"github.com/architeacher/users/pkg/metrics/otelmetrics"
	"github.com/architeacher/users/services/svc-users/internal/adapters/repos"
	"github.com/architeacher/users/services/svc-users/internal/config"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/infrastructure"
	infraPostgres "github.com/architeacher/users/services/svc-users/internal/infrastructure/postgres"
	"github.com/architeacher/users/services/svc-users/internal/services"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/hashicorp/vault/api"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dependencyDatabase = "postgres"
	dependencyCache    = "keydb"
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithTracing(ctx),
		WithMetrics(),
		WithSecretsRepository(),
		WithConfigLoader(ctx),
		WithDatabase(ctx),
		WithCache(ctx),
		WithUsersRepository(),
		WithCircuitBreaker(),
		WithUsersService(),
		WithHealthChecker(),
		WithApplication(),
	}
}

func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

// WithServiceConfig uses cfg instead of reading the environment.
func WithServiceConfig(cfg *config.ServiceConfig) DependencyOption {
	return func(d *dependencies) error {
		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format)

		return nil
	}
}

func WithTracing(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		tp, shutdown, err := infrastructure.NewTracerProvider(ctx, d.config.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.cleanupFuncs["tracer"] = shutdown

		return nil
	}
}

func WithMetrics() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Enabled || !d.config.Telemetry.Metrics.Enabled {
			d.infra.metricsClient = noop.NewMetricsClient()

			return nil
		}

		client := otelmetrics.New(
			d.config.Telemetry.ServiceName,
			d.config.Telemetry.ServiceVersion,
			d.infra.logger,
		)

		d.infra.metricsClient = client
		d.cleanupFuncs["metrics"] = client.Shutdown

		return nil
	}
}

func WithSecretsRepository() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.SecretsStorage.Enabled {
			return nil
		}

		vaultConfig := api.DefaultConfig()
		vaultConfig.Address = d.config.SecretsStorage.Address
		vaultConfig.Timeout = d.config.SecretsStorage.Timeout

		if d.config.SecretsStorage.TLSSkipVerify {
			vaultConfig.HttpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}

		client, err := api.NewClient(vaultConfig)
		if err != nil {
			return fmt.Errorf("creating Vault client: %w", err)
		}

		if d.config.SecretsStorage.Namespace != "" {
			client.SetNamespace(d.config.SecretsStorage.Namespace)
		}

		d.repos.secretsRepo = repos.NewVaultRepository(client)

		return nil
	}
}

// WithConfigLoader overlays Vault secrets on the configuration before any
// connection is opened.
func WithConfigLoader(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.SecretsStorage.Enabled || d.repos.secretsRepo == nil {
			return nil
		}

		version, err := config.NewLoader(d.repos.secretsRepo, d.config.Backoff).Load(ctx, d.config)
		if err != nil {
			return fmt.Errorf("loading secrets from Vault: %w", err)
		}

		d.secretVersion = version

		d.infra.logger.Debug().
			Uint("version", version).
			Msg("applied secrets from Vault")

		return nil
	}
}

func WithDatabase(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		pool, err := infraPostgres.NewPool(ctx, d.config.Database, d.config.Backoff, d.infra.logger)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}

		d.infra.dbPool = pool
		d.repos.dbPinger = pool
		d.cleanupFuncs["database"] = func(context.Context) error {
			pool.Close()

			return nil
		}

		return nil
	}
}

// WithDatabasePool reuses an open pool. The caller keeps ownership of it.
func WithDatabasePool(pool *pgxpool.Pool) DependencyOption {
	return func(d *dependencies) error {
		d.infra.dbPool = pool
		d.repos.dbPinger = pool

		return nil
	}
}

// WithCache connects the result cache. An unreachable cache is logged and
// skipped so searches keep working against the database.
func WithCache(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Cache.Enabled || !d.config.UsersCache.Enabled {
			return nil
		}

		client := infrastructure.NewKeyDBClient(d.config.Cache, d.infra.logger)

		pingCtx, cancel := context.WithTimeout(ctx, d.config.Cache.DialTimeout)
		defer cancel()

		if err := client.Ping(pingCtx); err != nil {
			d.infra.logger.Warn().
				Err(err).
				Str("address", d.config.Cache.Address).
				Msg("cache not reachable, continuing without result caching")

			_ = client.Close()

			return nil
		}

		d.infra.cacheClient = client
		d.repos.usersCache = repos.NewUsersCacheRepository(client, d.infra.logger)
		d.cleanupFuncs["cache"] = func(context.Context) error {
			return client.Close()
		}

		return nil
	}
}

func WithUsersRepository() DependencyOption {
	return func(d *dependencies) error {
		if d.infra.dbPool == nil {
			return errors.New("users repository requires a database pool")
		}

		d.repos.usersRepo = repos.NewUsersRepository(
			d.infra.dbPool,
			repos.NewPgxScanner(),
			repos.NewCriteriaTranslator(&d.infra.logger),
			d.infra.logger,
		)

		return nil
	}
}

func WithCircuitBreaker() DependencyOption {
	return func(d *dependencies) error {
		cfg := d.config.CircuitBreaker
		log := d.infra.logger

		d.services.breaker = circuitbreaker.New[[]*model.User](circuitbreaker.Config{
			Name:             "users-repository",
			Enabled:          cfg.Enabled,
			MaxRequests:      cfg.MaxRequests,
			Interval:         cfg.Interval,
			Timeout:          cfg.Timeout,
			FailureThreshold: cfg.FailureThreshold,
			IgnoredErrors: []error{
				model.ErrUserNotFound,
				model.ErrGroupNotFound,
				model.ErrDuplicateUser,
				model.ErrDuplicateGroup,
				repos.ErrUnsupportedField,
				context.Canceled,
			},
			OnStateChange: func(name, from, to string) {
				log.Warn().
					Str("breaker", name).
					Str("from", from).
					Str("to", to).
					Msg("circuit breaker state changed")
			},
		})

		return nil
	}
}

func WithUsersService() DependencyOption {
	return func(d *dependencies) error {
		d.services.users = services.NewUsersService(
			d.repos.usersRepo,
			d.infra.logger,
			services.WithCircuitBreaker(d.services.breaker),
		)

		return nil
	}
}

// WithHealthChecker treats the database as critical and the cache as
// optional.
func WithHealthChecker() DependencyOption {
	return func(d *dependencies) error {
		opts := make([]services.HealthOption, 0, 2)

		if d.repos.dbPinger != nil {
			opts = append(opts, services.WithCriticalDependency(dependencyDatabase, d.repos.dbPinger))
		}

		if d.repos.usersCache != nil {
			opts = append(opts, services.WithDependency(dependencyCache, d.repos.usersCache))
		}

		d.services.healthChecker = services.NewHealthService(d.config.App.ServiceVersion, opts...)

		return nil
	}
}

func WithApplication() DependencyOption {
	return func(d *dependencies) error {
		var caching usecases.FindUsersCaching

		if d.repos.usersCache != nil {
			caching = usecases.FindUsersCaching{
				Cache:       repos.NewFindUsersCacheAdapter(d.repos.usersCache),
				Invalidator: d.repos.usersCache,
				Config: decorator.CacheConfig{
					Enabled:    true,
					TTL:        d.config.UsersCache.FindTTL,
					SyncWrites: true,
				},
			}
		}

		d.app = usecases.NewApplication(
			d.services.users,
			d.services.healthChecker,
			caching,
			d.infra.logger,
			d.infra.metricsClient,
			d.infra.tracerProvider,
		)

		return nil
	}
}
