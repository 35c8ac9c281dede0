package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// Metrics holds the quoting engine's metric instruments.
type Metrics struct {
	meter metric.Meter

	// Quote computation metrics
	QuotesComputed metric.Int64Counter
	QuoteFailures  metric.Int64Counter
	QuoteDuration  metric.Float64Histogram

	// Batch metrics
	BatchDuration metric.Float64Histogram
	BatchSize     metric.Int64Histogram

	// Pool state cache metrics
	CacheHits   metric.Int64Counter
	CacheMisses metric.Int64Counter

	// Error metrics
	Errors metric.Int64Counter

	exporter *prometheus.Exporter
}

// NewMetrics creates a Metrics instance. With enabled=false all instruments
// are no-ops, so callers can record unconditionally.
func NewMetrics(serviceName string, enabled bool) (*Metrics, error) {
	if !enabled {
		m := &Metrics{meter: noop.NewMeterProvider().Meter(serviceName)}
		if err := m.initInstruments(); err != nil {
			return nil, err
		}
		return m, nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	m := &Metrics{
		meter:    provider.Meter(serviceName),
		exporter: exporter,
	}

	if err := m.initInstruments(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return m, nil
}

func (m *Metrics) initInstruments() error {
	var err error

	m.QuotesComputed, err = m.meter.Int64Counter(
		"quoter.quotes.computed",
		metric.WithDescription("Total quotes computed"),
	)
	if err != nil {
		return err
	}

	m.QuoteFailures, err = m.meter.Int64Counter(
		"quoter.quotes.failures",
		metric.WithDescription("Total quote computations that failed"),
	)
	if err != nil {
		return err
	}

	m.QuoteDuration, err = m.meter.Float64Histogram(
		"quoter.quote.duration",
		metric.WithDescription("Single quote computation duration in microseconds"),
		metric.WithUnit("us"),
	)
	if err != nil {
		return err
	}

	m.BatchDuration, err = m.meter.Float64Histogram(
		"quoter.batch.duration",
		metric.WithDescription("Batch quote duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	m.BatchSize, err = m.meter.Int64Histogram(
		"quoter.batch.size",
		metric.WithDescription("Number of quotes per batch"),
	)
	if err != nil {
		return err
	}

	m.CacheHits, err = m.meter.Int64Counter(
		"quoter.cache.hits",
		metric.WithDescription("Pool state cache hits"),
	)
	if err != nil {
		return err
	}

	m.CacheMisses, err = m.meter.Int64Counter(
		"quoter.cache.misses",
		metric.WithDescription("Pool state cache misses"),
	)
	if err != nil {
		return err
	}

	m.Errors, err = m.meter.Int64Counter(
		"quoter.errors",
		metric.WithDescription("Total errors encountered"),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordQuote records one quote computation.
func (m *Metrics) RecordQuote(ctx context.Context, op string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("op", op),
		attribute.Bool("success", err == nil),
	}

	m.QuotesComputed.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.QuoteDuration.Record(ctx, float64(duration.Microseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.QuoteFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	}
}

// RecordBatch records a completed batch of quotes.
func (m *Metrics) RecordBatch(ctx context.Context, size int, duration time.Duration) {
	m.BatchSize.Record(ctx, int64(size))
	m.BatchDuration.Record(ctx, float64(duration.Milliseconds()))
}

// RecordCacheHit records a pool state cache hit.
func (m *Metrics) RecordCacheHit(ctx context.Context) {
	m.CacheHits.Add(ctx, 1)
}

// RecordCacheMiss records a pool state cache miss.
func (m *Metrics) RecordCacheMiss(ctx context.Context) {
	m.CacheMisses.Add(ctx, 1)
}

// RecordError records an error by type.
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.Errors.Add(ctx, 1, metric.WithAttributes(attribute.String("type", errorType)))
}

// Handler returns the HTTP handler serving Prometheus metrics. The
// OpenTelemetry Prometheus exporter registers with the default registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
