package ports

import (
	"context"
	"time"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
)

// UsersCache stores find results keyed by the compiled criteria.
type UsersCache interface {
	// GetUsers returns the cached users and whether the key was present.
	GetUsers(ctx context.Context, criteria model.QueryCriteria) ([]*model.User, bool, error)

	SetUsers(ctx context.Context, criteria model.QueryCriteria, users []*model.User, ttl time.Duration) error

	// InvalidateAll removes every cached find result.
	InvalidateAll(ctx context.Context) error

	Ping(ctx context.Context) error
}
