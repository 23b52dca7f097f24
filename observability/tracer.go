package observability

import (
	"context"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/stream"
)

// Span and event names recorded by Traced.
const (
	SpanSubscribe   = "stream.subscribe"
	AttrStreamItems = "stream.items"

	EventCompleted = "completed"
	EventStopped   = "stopped"
	EventDisposed  = "disposed"
)

// TracerConfig configures the OpenTelemetry tracer provider.
type TracerConfig struct {
	ServiceName    string
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// SampleRate is the sampling rate (0.0 to 1.0).
	SampleRate float64
}

// DefaultTracerConfig returns defaults for a local collector.
func DefaultTracerConfig(serviceName string) TracerConfig {
	return TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		SampleRate:     1.0,
	}
}

// InitTracer initializes the global tracer provider with an OTLP HTTP exporter.
// The caller shuts the provider down on exit.
func InitTracer(ctx context.Context, config TracerConfig) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, errors.Telemetry("trace exporter", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, errors.Telemetry("resource", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracer initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"sample_rate", config.SampleRate,
	))

	return tp, nil
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// newResource creates an OpenTelemetry resource with service metadata.
func newResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			attribute.String("environment", environment),
		),
	)
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// Traced opens one span per subscription to src. The span ends when the
// delivery completes, when the consumer stops it, or on the first Dispose,
// whichever comes first, and records how many values passed through.
func Traced[T any](ctx context.Context, src stream.Observable[T], tracer trace.Tracer, name string) stream.ObservableFunc[T] {
	return func(o stream.Observer[T]) stream.Subscription {
		_, span := tracer.Start(ctx, SpanSubscribe,
			trace.WithAttributes(attribute.String(AttrStreamName, name)),
		)
		to := &tracedObserver[T]{o: o, span: span}
		sub := src.Subscribe(to)
		return stream.SubscriptionFunc(func() {
			to.finish(EventDisposed)
			sub.Dispose()
		})
	}
}

type tracedObserver[T any] struct {
	o     stream.Observer[T]
	span  trace.Span
	items atomic.Int64
	once  sync.Once
}

func (t *tracedObserver[T]) OnNext(value T) bool {
	t.items.Add(1)
	if !t.o.OnNext(value) {
		t.finish(EventStopped)
		return false
	}
	return true
}

func (t *tracedObserver[T]) OnCompleted() {
	t.finish(EventCompleted)
	t.o.OnCompleted()
}

func (t *tracedObserver[T]) finish(event string) {
	t.once.Do(func() {
		t.span.AddEvent(event)
		t.span.SetAttributes(attribute.Int64(AttrStreamItems, t.items.Load()))
		t.span.End()
	})
}
