// Package telemetry bundles the observability stack used by mgd.
//
// # Components
//
//   - logging: structured logging on log/slog
//   - metrics: Prometheus counters and histograms for engine operations
//   - tracing: OpenTelemetry spans exported by the stdout exporter
//
// # Usage
//
//	tel, err := telemetry.New(&cfg.Telemetry, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(ctx)
//
//	tel.Logger().Info("starting", "run_id", id)
//	ctx, span := tel.Tracer().Start(ctx, "engine.recurse")
//	defer span.End()
//
// Everything is written to the supplied writer (normally stderr) so that
// command results on stdout stay parseable.
package telemetry
