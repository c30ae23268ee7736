package metrics

import (
	"strconv"
	"time"

	"dialectic-hq/mgd/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics tracks engine operations.
//
// Metrics:
//   - mgd_engine_operations_total: operations by op and status
//   - mgd_engine_operation_duration_seconds: operation duration by op
//   - mgd_engine_invariant_checks_total: invariant checks by result
//   - mgd_engine_tensions: tension count of the most recent state
//   - mgd_engine_recurse_depth: requested recurse depths
type OperationMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	invariantChecks   *prometheus.CounterVec
	tensions          prometheus.Gauge
	recurseDepth      prometheus.Histogram
}

// NewOperationMetrics creates and registers operation metrics with the
// provided registry.
func NewOperationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *OperationMetrics {
	om := &OperationMetrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "operations_total",
				Help:      "Total number of engine operations",
			},
			[]string{"op", "status"},
		),

		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "operation_duration_seconds",
				Help:      "Duration of engine operations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 12), // 1µs to ~4s
			},
			[]string{"op"},
		),

		invariantChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "invariant_checks_total",
				Help:      "Total number of invariant checks by result",
			},
			[]string{"result"},
		),

		tensions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tensions",
				Help:      "Number of tensions in the most recent state",
			},
		),

		recurseDepth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "recurse_depth",
				Help:      "Depth requested by recurse calls",
				Buckets:   cfg.DepthBuckets,
			},
		),
	}

	registry.MustRegister(
		om.operationsTotal,
		om.operationDuration,
		om.invariantChecks,
		om.tensions,
		om.recurseDepth,
	)

	return om
}

// RecordOperation counts an operation and observes its duration.
func (om *OperationMetrics) RecordOperation(op, status string, duration time.Duration) {
	om.operationsTotal.WithLabelValues(op, status).Inc()
	om.operationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordInvariant counts an invariant check by result.
func (om *OperationMetrics) RecordInvariant(held bool) {
	om.invariantChecks.WithLabelValues(strconv.FormatBool(held)).Inc()
}

// SetTensions sets the current tension count.
func (om *OperationMetrics) SetTensions(n int) {
	om.tensions.Set(float64(n))
}

// RecordDepth observes a recurse depth.
func (om *OperationMetrics) RecordDepth(depth int) {
	om.recurseDepth.Observe(float64(depth))
}
