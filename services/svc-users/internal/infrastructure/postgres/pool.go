package postgres

import (
	"context"
	"fmt"

	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/services/svc-users/internal/config"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnString(cfg config.Database) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)
}

// NewPool opens a pool and pings it until the database answers or the retry
// budget is spent.
func NewPool(ctx context.Context, cfg config.Database, retry config.Backoff, log logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = retry.BaseDelay
	expBackoff.Multiplier = retry.Multiplier
	expBackoff.RandomizationFactor = retry.Jitter
	expBackoff.MaxInterval = retry.MaxDelay

	attempt := 0
	_, err = backoff.Retry(
		ctx,
		func() (struct{}, error) {
			attempt++

			if err := pool.Ping(ctx); err != nil {
				log.Warn().
					Err(err).
					Int("attempt", attempt).
					Str("host", cfg.Host).
					Msg("database not reachable yet")

				return struct{}{}, err
			}

			return struct{}{}, nil
		},
		backoff.WithMaxTries(cfg.ConnectRetries+1),
		backoff.WithBackOff(expBackoff),
	)
	if err != nil {
		pool.Close()

		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseConnection, err)
	}

	return pool, nil
}
