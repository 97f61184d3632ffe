package commands

import (
	"context"

	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/services/svc-users/internal/ports"
)

// invalidateFindResults drops cached searches after a write. Failures are
// logged and never fail the command.
func invalidateFindResults(ctx context.Context, cache ports.UsersCache, log logger.Logger) {
	if cache == nil {
		return
	}

	if err := cache.InvalidateAll(context.WithoutCancel(ctx)); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate cached find results")
	}
}
