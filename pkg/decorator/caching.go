package decorator

import (
	"context"
	"time"

	"github.com/architeacher/users/pkg/logger"
)

const defaultCacheWriteTimeout = 2 * time.Second

type (
	// CacheStatus represents the status of a cache operation.
	CacheStatus string

	// cacheStatusKey is the context key for cache status.
	cacheStatusKey struct{}

	// CacheConfig holds configuration for the caching decorator.
	CacheConfig struct {
		Enabled      bool
		TTL          time.Duration
		WriteTimeout time.Duration
		// SyncWrites stores results before returning, for short-lived
		// processes that may exit before a background write completes.
		SyncWrites bool
	}

	// CacheGetter retrieves items from cache.
	CacheGetter[Q Query, R Result] interface {
		Get(ctx context.Context, query Q) (R, bool, error)
	}

	// CacheSetter stores items in cache.
	CacheSetter[Q Query, R Result] interface {
		Set(ctx context.Context, query Q, result R, ttl time.Duration) error
	}

	// Cache combines getter and setter operations.
	Cache[Q Query, R Result] interface {
		CacheGetter[Q, R]
		CacheSetter[Q, R]
	}

	queryCachingDecorator[Q Query, R Result] struct {
		base   QueryHandler[Q, R]
		cache  Cache[Q, R]
		config CacheConfig
		logger logger.Logger
	}
)

const (
	CacheStatusHit    CacheStatus = "HIT"
	CacheStatusMiss   CacheStatus = "MISS"
	CacheStatusBypass CacheStatus = "BYPASS"
	CacheStatusError  CacheStatus = "ERROR"
)

// WithCacheStatus adds cache status to context.
func WithCacheStatus(ctx context.Context, status CacheStatus) context.Context {
	return context.WithValue(ctx, cacheStatusKey{}, status)
}

// GetCacheStatus retrieves cache status from context.
func GetCacheStatus(ctx context.Context) CacheStatus {
	if status, ok := ctx.Value(cacheStatusKey{}).(CacheStatus); ok {
		return status
	}

	return CacheStatusBypass
}

// NewQueryCachingDecorator serves results from cache when possible and stores
// fresh results asynchronously. Cache failures never fail the query.
func NewQueryCachingDecorator[Q Query, R Result](
	base QueryHandler[Q, R],
	cache Cache[Q, R],
	config CacheConfig,
	log logger.Logger,
) QueryHandler[Q, R] {
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = defaultCacheWriteTimeout
	}

	return queryCachingDecorator[Q, R]{
		base:   base,
		cache:  cache,
		config: config,
		logger: log,
	}
}

func (d queryCachingDecorator[Q, R]) Execute(ctx context.Context, query Q) (R, error) {
	if !d.config.Enabled || d.cache == nil {
		return d.base.Execute(WithCacheStatus(ctx, CacheStatusBypass), query)
	}

	log := d.logger.WithContext(ctx)
	queryName := generateActionName(query)

	cached, hit, err := d.cache.Get(ctx, query)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("query", queryName).Msg("cache lookup failed, falling back to handler")
		ctx = WithCacheStatus(ctx, CacheStatusError)
	case hit:
		log.Debug().Str("query", queryName).Msg("cache hit")

		return cached, nil
	default:
		ctx = WithCacheStatus(ctx, CacheStatusMiss)
	}

	result, err := d.base.Execute(ctx, query)
	if err != nil {
		var zero R

		return zero, err
	}

	if d.config.SyncWrites {
		d.store(ctx, queryName, query, result)

		return result, nil
	}

	go d.store(ctx, queryName, query, result)

	return result, nil
}

func (d queryCachingDecorator[Q, R]) store(ctx context.Context, queryName string, query Q, result R) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.config.WriteTimeout)
	defer cancel()

	if err := d.cache.Set(writeCtx, query, result, d.config.TTL); err != nil {
		d.logger.Warn().Err(err).Str("query", queryName).Msg("failed to store query result in cache")
	}
}
