package metrics

import (
	"fmt"
	"io"
	"time"

	"dialectic-hq/mgd/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Operation outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Collector owns the Prometheus registry and the engine and generator metric
// groups. Every recording method is a no-op when metrics are disabled.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Engine operation metrics
	operationMetrics *OperationMetrics

	// Generator metrics
	generatorMetrics *GeneratorMetrics
}

// NewCollector creates a collector and registers its metrics with registry.
// A nil registry gets a fresh one.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "mgd",
//		Subsystem: "engine",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DepthBuckets) == 0 {
		cfg.DepthBuckets = config.DefaultDepthBuckets()
	}

	return &Collector{
		config:           cfg,
		registry:         registry,
		operationMetrics: NewOperationMetrics(cfg, registry),
		generatorMetrics: NewGeneratorMetrics(cfg, registry),
	}
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordOperation records one engine operation.
//
// Parameters:
//   - op: operation name ("hybridize", "resolve", "recurse", "check")
//   - status: StatusOK or StatusError
//   - duration: wall time of the operation
//   - tensions: tension count of the resulting state
func (c *Collector) RecordOperation(op, status string, duration time.Duration, tensions int) {
	if !c.config.Enabled {
		return
	}

	c.operationMetrics.RecordOperation(op, status, duration)
	if status == StatusOK {
		c.operationMetrics.SetTensions(tensions)
	}
}

// RecordRecurseDepth records the depth requested by a recurse call.
func (c *Collector) RecordRecurseDepth(depth int) {
	if !c.config.Enabled {
		return
	}

	c.operationMetrics.RecordDepth(depth)
}

// RecordInvariantCheck records the outcome of an invariant check.
func (c *Collector) RecordInvariantCheck(held bool) {
	if !c.config.Enabled {
		return
	}

	c.operationMetrics.RecordInvariant(held)
}

// RecordGeneratorStep records one state yielded by a generator.
func (c *Collector) RecordGeneratorStep() {
	if !c.config.Enabled {
		return
	}

	c.generatorMetrics.RecordStep()
}

// RecordReseed records a generator restart from a new seed.
func (c *Collector) RecordReseed() {
	if !c.config.Enabled {
		return
	}

	c.generatorMetrics.RecordReseed()
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteText writes every gathered metric family to w in the Prometheus text
// exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
