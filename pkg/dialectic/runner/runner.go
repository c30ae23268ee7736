// Package runner drives the dialectic engine with telemetry attached.
//
// Every operation runs inside an OpenTelemetry span, is counted and timed in
// Prometheus, is logged at debug level, is checked against the invariant and
// is appended to the run's History. A Runner is identified by a run ID that
// is attached to all of its logs and spans.
package runner

import (
	"context"
	"fmt"
	"time"

	"dialectic-hq/mgd/pkg/dialectic/engine"
	"dialectic-hq/mgd/pkg/telemetry"
	"dialectic-hq/mgd/pkg/telemetry/logging"
	"dialectic-hq/mgd/pkg/telemetry/metrics"
	"dialectic-hq/mgd/pkg/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Runner is an instrumented facade over an engine.Engine. It is safe for
// concurrent use as long as each goroutine works on its own states.
type Runner struct {
	engine  *engine.Engine
	tel     *telemetry.Telemetry
	logger  *logging.Logger
	history *engine.History
	runID   string
}

// Option configures a Runner.
type Option func(*Runner)

// WithRunID overrides the generated run ID.
func WithRunID(id string) Option {
	return func(r *Runner) {
		if id != "" {
			r.runID = id
		}
	}
}

// WithHistory records into h instead of a fresh history.
func WithHistory(h *engine.History) Option {
	return func(r *Runner) {
		if h != nil {
			r.history = h
		}
	}
}

// New creates a Runner. A nil tel disables telemetry.
func New(eng *engine.Engine, tel *telemetry.Telemetry, opts ...Option) *Runner {
	if tel == nil {
		tel = telemetry.Nop()
	}

	r := &Runner{
		engine:  eng,
		tel:     tel,
		history: engine.NewHistory(),
		runID:   uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = tel.Logger().With("component", "runner")
	return r
}

// RunID returns the run identifier.
func (r *Runner) RunID() string {
	return r.runID
}

// History returns the run's provenance log.
func (r *Runner) History() *engine.History {
	return r.history
}

// Engine returns the underlying engine.
func (r *Runner) Engine() *engine.Engine {
	return r.engine
}

// Seed records s as the starting state of a run and checks it.
func (r *Runner) Seed(ctx context.Context, s engine.State) engine.State {
	r.run(ctx, engine.OpSeed, "", nil, func() (engine.State, error) {
		return s, nil
	})
	return s
}

// Hybridize applies the hybridization operator to tensions i and j.
func (r *Runner) Hybridize(ctx context.Context, s engine.State, i, j int) (engine.State, error) {
	attrs := []attribute.KeyValue{
		attribute.Int(tracing.AttrIndexI, i),
		attribute.Int(tracing.AttrIndexJ, j),
	}
	state, _, err := r.run(ctx, engine.OpHybridize, fmt.Sprintf("i=%d j=%d", i, j), attrs, func() (engine.State, error) {
		return r.engine.Hybridize(s, i, j)
	})
	return state, err
}

// Resolve applies the resolution operator.
func (r *Runner) Resolve(ctx context.Context, s engine.State) (engine.State, error) {
	state, _, err := r.run(ctx, engine.OpResolve, "", nil, func() (engine.State, error) {
		return r.engine.Resolve(s)
	})
	return state, err
}

// Recurse applies depth closest-pair hybridizations. Only accepted depths
// reach the depth histogram.
func (r *Runner) Recurse(ctx context.Context, s engine.State, depth int) (engine.State, error) {
	attrs := []attribute.KeyValue{attribute.Int(tracing.AttrDepth, depth)}
	state, _, err := r.run(ctx, engine.OpRecurse, fmt.Sprintf("depth=%d", depth), attrs, func() (engine.State, error) {
		next, err := r.engine.Recurse(s, depth)
		if err == nil {
			r.tel.Metrics().RecordRecurseDepth(depth)
		}
		return next, err
	})
	return state, err
}

// Check reports whether s satisfies the invariant and records the verdict.
func (r *Runner) Check(ctx context.Context, s engine.State) bool {
	_, held, _ := r.run(ctx, engine.OpCheck, "", nil, func() (engine.State, error) {
		return s, nil
	})
	return held
}

// Context returns ctx annotated with the run ID for logging.
func (r *Runner) Context(ctx context.Context) context.Context {
	return logging.WithRunID(ctx, r.runID)
}

// run executes fn as op with the full instrumentation stack and reports the
// invariant verdict for the resulting state.
func (r *Runner) run(ctx context.Context, op engine.Operation, params string, attrs []attribute.KeyValue, fn func() (engine.State, error)) (engine.State, bool, error) {
	ctx = logging.WithOperation(r.Context(ctx), op.String())
	attrs = append(attrs,
		attribute.String(tracing.AttrRunID, r.runID),
		attribute.String(tracing.AttrOperation, op.String()),
	)
	ctx, span := r.tel.Tracer().Start(ctx, "engine."+op.String(), trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	state, err := fn()
	elapsed := time.Since(start)

	if err != nil {
		r.tel.Metrics().RecordOperation(op.String(), metrics.StatusError, elapsed, 0)
		tracing.SetStatus(span, err)
		r.logger.DebugContext(ctx, "operation failed", "params", params, "error", err)
		return engine.State{}, false, err
	}

	r.tel.Metrics().RecordOperation(op.String(), metrics.StatusOK, elapsed, state.Len())
	tracing.SetStateAttributes(span, state.Len(), state.Synthesis(), state.Antithesis())

	held := r.engine.CheckInvariant(state)
	r.tel.Metrics().RecordInvariantCheck(held)
	tracing.SetInvariantAttribute(span, held)
	r.history.Append(op, params, state, held)

	if !held {
		r.logger.ErrorContext(ctx, "invariant violated",
			"params", params,
			"state", state.String(),
			"slack", state.Slack(),
		)
	} else {
		r.logger.DebugContext(ctx, "operation applied",
			"params", params,
			"state", state.String(),
			"duration", elapsed,
		)
	}

	tracing.SetStatus(span, nil)
	return state, held, nil
}

// Bind returns an engine.Operator whose calls are instrumented with ctx.
func (r *Runner) Bind(ctx context.Context) engine.Operator {
	return &boundOperator{runner: r, ctx: ctx}
}

type boundOperator struct {
	runner *Runner
	ctx    context.Context
}

func (b *boundOperator) Hybridize(s engine.State, i, j int) (engine.State, error) {
	return b.runner.Hybridize(b.ctx, s, i, j)
}

func (b *boundOperator) Resolve(s engine.State) (engine.State, error) {
	return b.runner.Resolve(b.ctx, s)
}

func (b *boundOperator) Recurse(s engine.State, depth int) (engine.State, error) {
	return b.runner.Recurse(b.ctx, s, depth)
}

var _ engine.Operator = (*boundOperator)(nil)
