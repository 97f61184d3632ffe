package ports

import (
	"context"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
)

type (
	// Pinger is a dependency whose liveness can be probed.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	HealthChecker interface {
		Health(ctx context.Context) (*model.HealthReport, error)
	}
)
