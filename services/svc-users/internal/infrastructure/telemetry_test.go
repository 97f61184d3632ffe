package infrastructure_test

import (
	"context"
	"testing"

	"github.com/architeacher/users/services/svc-users/internal/config"
	"github.com/architeacher/users/services/svc-users/internal/infrastructure"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  config.Telemetry
	}{
		{name: "telemetry disabled", cfg: config.Telemetry{Traces: config.Traces{Enabled: true}}},
		{name: "traces disabled", cfg: config.Telemetry{Enabled: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tp, shutdown, err := infrastructure.NewTracerProvider(context.Background(), tc.cfg)
			require.NoError(t, err)
			require.IsType(t, noop.TracerProvider{}, tp)
			require.NoError(t, shutdown(context.Background()))
		})
	}
}
