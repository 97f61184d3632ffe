package repos

import (
	"context"
	"time"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/ports"
	"github.com/architeacher/users/services/svc-users/internal/usecases/queries"
)

// FindUsersCacheAdapter adapts UsersCache for FindUsersQuery. Entries are
// keyed by the compiled criteria, so specs that compile alike share a result.
type FindUsersCacheAdapter struct {
	cache ports.UsersCache
}

func NewFindUsersCacheAdapter(cache ports.UsersCache) *FindUsersCacheAdapter {
	return &FindUsersCacheAdapter{cache: cache}
}

func (a *FindUsersCacheAdapter) Get(ctx context.Context, query queries.FindUsersQuery) ([]*model.User, bool, error) {
	return a.cache.GetUsers(ctx, model.Compile(query.Spec))
}

func (a *FindUsersCacheAdapter) Set(ctx context.Context, query queries.FindUsersQuery, result []*model.User, ttl time.Duration) error {
	return a.cache.SetUsers(ctx, model.Compile(query.Spec), result, ttl)
}
