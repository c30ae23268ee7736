package metrics

import (
	"dialectic-hq/mgd/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// GeneratorMetrics tracks lazy state generation.
//
// Metrics:
//   - mgd_engine_generator_steps_total: states yielded by generators
//   - mgd_engine_generator_reseeds_total: generator restarts from a new seed
type GeneratorMetrics struct {
	stepsTotal   prometheus.Counter
	reseedsTotal prometheus.Counter
}

// NewGeneratorMetrics creates and registers generator metrics with the
// provided registry.
func NewGeneratorMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *GeneratorMetrics {
	gm := &GeneratorMetrics{
		stepsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "generator_steps_total",
				Help:      "Total number of states yielded by generators",
			},
		),

		reseedsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "generator_reseeds_total",
				Help:      "Total number of generator restarts from a new seed",
			},
		),
	}

	registry.MustRegister(gm.stepsTotal, gm.reseedsTotal)

	return gm
}

// RecordStep counts a yielded state.
func (gm *GeneratorMetrics) RecordStep() {
	gm.stepsTotal.Inc()
}

// RecordReseed counts a reseed.
func (gm *GeneratorMetrics) RecordReseed() {
	gm.reseedsTotal.Inc()
}
