// Package metrics provides Prometheus metrics for the dialectic engine.
//
// A Collector owns its own registry and records operation counts and
// durations, invariant check outcomes, the current tension count, requested
// recurse depths and generator progress. mgd is a one-shot CLI, so metrics
// are not scraped; WriteText dumps the registry in the Prometheus text format
// when a command finishes.
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordOperation("recurse", metrics.StatusOK, elapsed, state.Len())
//	_ = collector.WriteText(os.Stderr)
package metrics
