package engine

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Step is one scheduled transition of a Generator.
type Step struct {
	Op    Operation
	I, J  int // hybridize only
	Depth int // recurse only
}

// DefaultSchedule hybridizes the closest pair once per step.
func DefaultSchedule() []Step {
	return []Step{{Op: OpRecurse, Depth: 1}}
}

// ParseStep parses "recurse", "recurse:<depth>", "resolve" or
// "hybridize:<i>:<j>".
func ParseStep(text string) (Step, error) {
	fields := strings.Split(strings.TrimSpace(text), ":")
	op := Operation(strings.ToLower(fields[0]))
	args := fields[1:]

	switch op {
	case OpResolve:
		if len(args) != 0 {
			return Step{}, &ValueError{Param: "step", Value: text, Message: "resolve takes no arguments"}
		}
		return Step{Op: OpResolve}, nil

	case OpRecurse:
		if len(args) == 0 {
			return Step{Op: OpRecurse, Depth: 1}, nil
		}
		if len(args) != 1 {
			return Step{}, &ValueError{Param: "step", Value: text, Message: "expected recurse:<depth>"}
		}
		depth, err := strconv.Atoi(args[0])
		if err != nil {
			return Step{}, &ValueError{Param: "step", Value: text, Message: "depth is not an integer"}
		}
		if depth < 0 {
			return Step{}, &ValueError{Param: "step", Value: text, Message: "depth must be non-negative"}
		}
		return Step{Op: OpRecurse, Depth: depth}, nil

	case OpHybridize:
		if len(args) != 2 {
			return Step{}, &ValueError{Param: "step", Value: text, Message: "expected hybridize:<i>:<j>"}
		}
		i, errI := strconv.Atoi(args[0])
		j, errJ := strconv.Atoi(args[1])
		if errI != nil || errJ != nil {
			return Step{}, &ValueError{Param: "step", Value: text, Message: "indices are not integers"}
		}
		return Step{Op: OpHybridize, I: i, J: j}, nil

	default:
		return Step{}, &ValueError{Param: "step", Value: text, Message: "unknown operation"}
	}
}

// ParseSchedule parses a list of steps. An empty list yields DefaultSchedule.
func ParseSchedule(texts []string) ([]Step, error) {
	if len(texts) == 0 {
		return DefaultSchedule(), nil
	}
	steps := make([]Step, 0, len(texts))
	for _, text := range texts {
		step, err := ParseStep(text)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Apply runs the step against s.
func (st Step) Apply(op Operator, s State) (State, error) {
	switch st.Op {
	case OpHybridize:
		return op.Hybridize(s, st.I, st.J)
	case OpResolve:
		return op.Resolve(s)
	case OpRecurse:
		return op.Recurse(s, st.Depth)
	default:
		return State{}, &ValueError{Param: "step", Value: st.Op, Message: "unknown operation"}
	}
}

// String renders the step in ParseStep syntax.
func (st Step) String() string {
	switch st.Op {
	case OpHybridize:
		return fmt.Sprintf("hybridize:%d:%d", st.I, st.J)
	case OpRecurse:
		return fmt.Sprintf("recurse:%d", st.Depth)
	default:
		return string(st.Op)
	}
}

// Generator lazily yields the states of a run: the seed first, then one state
// per scheduled step, cycling through the schedule. The sequence is unbounded
// unless MaxSteps is set; callers stop by no longer calling Next.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	op       Operator
	schedule []Step
	maxSteps int

	seed    State
	state   State
	step    int
	started bool
	done    bool
	err     error
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSchedule sets the cyclic step schedule. An empty schedule keeps the
// default.
func WithSchedule(schedule []Step) GeneratorOption {
	return func(g *Generator) {
		if len(schedule) > 0 {
			g.schedule = append([]Step(nil), schedule...)
		}
	}
}

// WithMaxSteps bounds the number of transitions after the seed. Zero means
// unbounded.
func WithMaxSteps(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxSteps = n
		}
	}
}

// NewGenerator creates a Generator seeded with seed.
func NewGenerator(op Operator, seed State, opts ...GeneratorOption) *Generator {
	g := &Generator{
		op:       op,
		schedule: DefaultSchedule(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Reseed(seed)
	return g
}

// Next advances to the next state. It returns false once MaxSteps is reached
// or a step fails; Err reports the failure.
func (g *Generator) Next() bool {
	if g.done {
		return false
	}
	if !g.started {
		g.started = true
		return true
	}
	if g.maxSteps > 0 && g.step >= g.maxSteps {
		g.done = true
		return false
	}

	st := g.schedule[g.step%len(g.schedule)]
	next, err := st.Apply(g.op, g.state)
	if err != nil {
		g.err = fmt.Errorf("step %d (%s): %w", g.step+1, st, err)
		g.done = true
		return false
	}
	g.state = next
	g.step++
	return true
}

// State returns the current state.
func (g *Generator) State() State {
	return g.state
}

// Step returns the number of transitions applied since the last seed.
func (g *Generator) Step() int {
	return g.step
}

// Err returns the error that stopped the generator, if any.
func (g *Generator) Err() error {
	return g.err
}

// Seed returns the state the current run started from.
func (g *Generator) Seed() State {
	return g.seed
}

// Reseed restarts the sequence from seed.
func (g *Generator) Reseed(seed State) {
	g.seed = seed
	g.state = seed
	g.step = 0
	g.started = false
	g.done = false
	g.err = nil
}

// All returns an iterator over (step, state) pairs. Check Err after the loop.
func (g *Generator) All() iter.Seq2[int, State] {
	return func(yield func(int, State) bool) {
		for g.Next() {
			if !yield(g.step, g.state) {
				return
			}
		}
	}
}
