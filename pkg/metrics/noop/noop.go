// Package noop provides a metrics client that records nothing, for tests and
// for runs with metrics disabled.
package noop

import (
	"context"

	"github.com/architeacher/users/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

type MetricsClient struct{}

var _ metrics.Client = MetricsClient{}

func NewMetricsClient() MetricsClient {
	return MetricsClient{}
}

func (c MetricsClient) Inc(_ context.Context, _ string, _ any, _ ...attribute.KeyValue) {}

func (c MetricsClient) Observe(_ context.Context, _ string, _ float64, _ ...attribute.KeyValue) {}

func (c MetricsClient) Shutdown(_ context.Context) error {
	return nil
}
