package runner

import (
	"context"
	"iter"

	"dialectic-hq/mgd/pkg/dialectic/engine"
	"dialectic-hq/mgd/pkg/telemetry/logging"
)

// Generator is an engine.Generator whose steps run through the Runner.
// Yielded states are counted, the seed of every run is recorded in the
// history, and step numbers are attached to logs.
//
// Like engine.Generator it is not safe for concurrent use.
type Generator struct {
	runner *Runner
	gen    *engine.Generator
	op     *boundOperator
	ctx    context.Context
}

// Generator creates a lazy state sequence starting at seed. An empty
// schedule means engine.DefaultSchedule and maxSteps of zero means unbounded.
func (r *Runner) Generator(ctx context.Context, seed engine.State, schedule []engine.Step, maxSteps int) *Generator {
	op := &boundOperator{runner: r, ctx: ctx}
	return &Generator{
		runner: r,
		gen:    engine.NewGenerator(op, seed, engine.WithSchedule(schedule), engine.WithMaxSteps(maxSteps)),
		op:     op,
		ctx:    ctx,
	}
}

// Next advances the sequence. See engine.Generator.Next.
func (g *Generator) Next() bool {
	step := g.gen.Step()
	g.op.ctx = logging.WithStep(g.ctx, step+1)

	if !g.gen.Next() {
		if err := g.gen.Err(); err != nil {
			g.runner.logger.WarnContext(g.runner.Context(g.ctx), "generator stopped", "step", g.gen.Step(), "error", err)
		}
		return false
	}

	if g.gen.Step() == 0 {
		g.runner.Seed(logging.WithStep(g.ctx, 0), g.gen.State())
	}
	g.runner.tel.Metrics().RecordGeneratorStep()
	return true
}

// State returns the current state.
func (g *Generator) State() engine.State {
	return g.gen.State()
}

// Step returns the number of transitions since the last seed.
func (g *Generator) Step() int {
	return g.gen.Step()
}

// Err returns the error that stopped the sequence, if any.
func (g *Generator) Err() error {
	return g.gen.Err()
}

// Seed returns the state the current run started from.
func (g *Generator) Seed() engine.State {
	return g.gen.Seed()
}

// Reseed restarts the sequence from seed.
func (g *Generator) Reseed(seed engine.State) {
	g.gen.Reseed(seed)
	g.runner.tel.Metrics().RecordReseed()
	g.runner.logger.InfoContext(g.runner.Context(g.ctx), "generator reseeded", "seed", seed.String())
}

// All returns an iterator over (step, state) pairs. Check Err after the loop.
func (g *Generator) All() iter.Seq2[int, engine.State] {
	return func(yield func(int, engine.State) bool) {
		for g.Next() {
			if !yield(g.Step(), g.State()) {
				return
			}
		}
	}
}
