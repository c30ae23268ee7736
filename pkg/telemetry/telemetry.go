package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"dialectic-hq/mgd/pkg/config"
	"dialectic-hq/mgd/pkg/telemetry/logging"
	"dialectic-hq/mgd/pkg/telemetry/metrics"
	"dialectic-hq/mgd/pkg/telemetry/tracing"
)

// Telemetry holds the logger, metrics collector and tracer for one process.
type Telemetry struct {
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	out     io.Writer
}

// New builds the telemetry stack from cfg. Logs and spans go to w; a nil w
// means stderr.
func New(cfg *config.TelemetryConfig, w io.Writer) (*Telemetry, error) {
	if cfg == nil {
		return nil, errors.New("telemetry config is nil")
	}
	if w == nil {
		w = os.Stderr
	}

	logger, err := logging.New(logging.FromConfig(cfg.Logging, w))
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	tracer, err := tracing.New(&cfg.Tracing, w)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	return &Telemetry{
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Metrics, nil),
		tracer:  tracer,
		out:     w,
	}, nil
}

// Nop returns telemetry that records nothing.
func Nop() *Telemetry {
	return &Telemetry{
		logger:  logging.Nop(),
		metrics: metrics.NewCollector(&config.MetricsConfig{Enabled: false}, nil),
		tracer:  tracing.Noop(),
		out:     io.Discard,
	}
}

// Logger returns the structured logger.
func (t *Telemetry) Logger() *logging.Logger {
	return t.logger
}

// Metrics returns the metrics collector.
func (t *Telemetry) Metrics() *metrics.Collector {
	return t.metrics
}

// Tracer returns the tracer.
func (t *Telemetry) Tracer() *tracing.Tracer {
	return t.tracer
}

// DumpMetrics writes the collected metrics to the telemetry writer in the
// Prometheus text format. It does nothing when metrics are disabled.
func (t *Telemetry) DumpMetrics() error {
	if !t.metrics.Enabled() {
		return nil
	}
	return t.metrics.WriteText(t.out)
}

// Shutdown flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if err := t.tracer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracing: %w", err)
	}
	return nil
}
