package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/services"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingerFunc(func(context.Context) error { return nil })
	down = pingerFunc(func(context.Context) error { return errors.New("connection refused") })
)

func TestHealthService_Health(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		opts     []services.HealthOption
		expected model.HealthStatus
	}{
		{
			name: "all dependencies up",
			opts: []services.HealthOption{
				services.WithCriticalDependency("postgres", up),
				services.WithDependency("cache", up),
			},
			expected: model.HealthStatusOK,
		},
		{
			name: "cache down degrades",
			opts: []services.HealthOption{
				services.WithCriticalDependency("postgres", up),
				services.WithDependency("cache", down),
			},
			expected: model.HealthStatusDegraded,
		},
		{
			name: "database down",
			opts: []services.HealthOption{
				services.WithCriticalDependency("postgres", down),
				services.WithDependency("cache", down),
			},
			expected: model.HealthStatusDown,
		},
		{
			name:     "no dependencies",
			expected: model.HealthStatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report, err := services.NewHealthService("1.2.3", tc.opts...).Health(context.Background())

			require.NoError(t, err)
			require.Equal(t, tc.expected, report.Status)
			require.Equal(t, "1.2.3", report.Version)
			require.Len(t, report.Checks, len(tc.opts))
		})
	}
}

func TestHealthService_ReportsErrors(t *testing.T) {
	t.Parallel()

	report, err := services.NewHealthService("dev",
		services.WithCriticalDependency("postgres", down),
	).Health(context.Background())

	require.NoError(t, err)

	check := report.Checks["postgres"]
	require.Equal(t, model.DependencyStatusDown, check.Status)
	require.Equal(t, "connection refused", check.Error)
	require.False(t, check.LastChecked.IsZero())
}
