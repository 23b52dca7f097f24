// Package observability decorates streams with structured logging,
// OpenTelemetry metrics and tracing, and initializes the OTLP providers.
//
// Decorators are transparent: values, stop signals and completion pass
// through unchanged.
//
//	m, err := observability.NewMetrics(observability.Meter("rxdemo"))
//	src := observability.Metered(stream.Range(1, 10), m, "numbers")
//	src = observability.Logged(src, logger.Get("stream"), "numbers")
//	values, completed := stream.Collect(src)
//
// Providers:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("rxdemo"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("rxdemo"))
//	defer mp.Shutdown(ctx)
package observability
