package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/stream"
)

// Metric names recorded by Metered.
const (
	MetricItems         = "stream.items"
	MetricCompleted     = "stream.completed"
	MetricStopped       = "stream.stopped"
	MetricSubscriptions = "stream.subscriptions"
)

// AttrStreamName labels every stream measurement and span.
const AttrStreamName = "stream.name"

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the global meter provider with an OTLP HTTP exporter.
// The caller shuts the provider down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, errors.Telemetry("metric exporter", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, errors.Telemetry("resource", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the counters recorded by Metered.
type Metrics struct {
	items         metric.Int64Counter
	completed     metric.Int64Counter
	stopped       metric.Int64Counter
	subscriptions metric.Int64Counter
}

// NewMetrics creates the stream counters on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	items, err := meter.Int64Counter(MetricItems,
		metric.WithDescription("Values delivered downstream"),
	)
	if err != nil {
		return nil, errors.Telemetry(MetricItems, err)
	}

	completed, err := meter.Int64Counter(MetricCompleted,
		metric.WithDescription("Deliveries that reached completion"),
	)
	if err != nil {
		return nil, errors.Telemetry(MetricCompleted, err)
	}

	stopped, err := meter.Int64Counter(MetricStopped,
		metric.WithDescription("Deliveries stopped by the consumer"),
	)
	if err != nil {
		return nil, errors.Telemetry(MetricStopped, err)
	}

	subscriptions, err := meter.Int64Counter(MetricSubscriptions,
		metric.WithDescription("Subscriptions opened"),
	)
	if err != nil {
		return nil, errors.Telemetry(MetricSubscriptions, err)
	}

	return &Metrics{
		items:         items,
		completed:     completed,
		stopped:       stopped,
		subscriptions: subscriptions,
	}, nil
}

// Metered counts subscriptions, delivered values, completions and consumer
// stops for src under the given stream name.
func Metered[T any](src stream.Observable[T], m *Metrics, name string) stream.ObservableFunc[T] {
	attrs := metric.WithAttributes(attribute.String(AttrStreamName, name))
	return func(o stream.Observer[T]) stream.Subscription {
		ctx := context.Background()
		m.subscriptions.Add(ctx, 1, attrs)
		return src.Subscribe(&meteredObserver[T]{o: o, m: m, ctx: ctx, attrs: attrs})
	}
}

type meteredObserver[T any] struct {
	o     stream.Observer[T]
	m     *Metrics
	ctx   context.Context
	attrs metric.MeasurementOption
}

func (mo *meteredObserver[T]) OnNext(value T) bool {
	mo.m.items.Add(mo.ctx, 1, mo.attrs)
	if !mo.o.OnNext(value) {
		mo.m.stopped.Add(mo.ctx, 1, mo.attrs)
		return false
	}
	return true
}

func (mo *meteredObserver[T]) OnCompleted() {
	mo.m.completed.Add(mo.ctx, 1, mo.attrs)
	mo.o.OnCompleted()
}
