// Package otelmetrics implements metrics.Client on top of the OpenTelemetry SDK.
package otelmetrics

import (
	"context"
	"fmt"
	"sync"

	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
)

type Client struct {
	provider *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader
	meter    metric.Meter
	logger   logger.Logger

	mu         sync.Mutex
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
}

var _ metrics.Client = (*Client)(nil)

func New(serviceName, serviceVersion string, log logger.Logger) *Client {
	reader := sdkmetric.NewManualReader()

	res := resource.NewSchemaless(
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)

	return &Client{
		provider:   provider,
		reader:     reader,
		meter:      provider.Meter(serviceName),
		logger:     log,
		counters:   make(map[string]metric.Int64Counter),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

func (c *Client) Inc(ctx context.Context, key string, value any, attributes ...attribute.KeyValue) {
	delta, ok := metrics.ToInt64(value)
	if !ok {
		c.logger.Warn().Str("metric", key).Msgf("unsupported counter value type %T", value)

		return
	}

	counter, err := c.counter(key)
	if err != nil {
		c.logger.Warn().Err(err).Str("metric", key).Msg("dropping counter increment")

		return
	}

	counter.Add(ctx, delta, metric.WithAttributes(attributes...))
}

func (c *Client) Observe(ctx context.Context, key string, value float64, attributes ...attribute.KeyValue) {
	histogram, err := c.histogram(key)
	if err != nil {
		c.logger.Warn().Err(err).Str("metric", key).Msg("dropping histogram observation")

		return
	}

	histogram.Record(ctx, value, metric.WithAttributes(attributes...))
}

// Snapshot collects everything recorded so far.
func (c *Client) Snapshot(ctx context.Context) (metricdata.ResourceMetrics, error) {
	var rm metricdata.ResourceMetrics

	if err := c.reader.Collect(ctx, &rm); err != nil {
		return rm, fmt.Errorf("collecting metrics: %w", err)
	}

	return rm, nil
}

func (c *Client) Shutdown(ctx context.Context) error {
	return c.provider.Shutdown(ctx)
}

func (c *Client) counter(key string) (metric.Int64Counter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok := c.counters[key]; ok {
		return counter, nil
	}

	counter, err := metrics.RegisterInt64Counter(c.meter, metrics.Descriptor{Description: key, Unit: "1"}, key)
	if err != nil {
		return nil, err
	}

	c.counters[key] = counter

	return counter, nil
}

func (c *Client) histogram(key string) (metric.Float64Histogram, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if histogram, ok := c.histograms[key]; ok {
		return histogram, nil
	}

	histogram, err := metrics.RegisterFloat64Histogram(c.meter, metrics.Descriptor{Description: key, Unit: "s"}, key)
	if err != nil {
		return nil, err
	}

	c.histograms[key] = histogram

	return histogram, nil
}
