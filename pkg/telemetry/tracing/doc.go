// Package tracing provides OpenTelemetry tracing for engine operations.
//
// Each engine operation runs in its own span carrying the operation name,
// its parameters and the shape of the resulting state. Spans are exported
// synchronously as JSON lines by the stdout exporter, which keeps traces
// usable from a one-shot CLI without a collector.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, os.Stderr)
//	defer tracer.Shutdown(ctx)
//	ctx, span := tracer.Start(ctx, "engine.resolve")
//	defer span.End()
package tracing
