package engine

import (
	"math"
	"slices"
	"sort"
)

// Operation names an engine operator.
type Operation string

const (
	// OpSeed marks the initial state of a run.
	OpSeed Operation = "seed"

	// OpHybridize combines two tensions into a new one.
	OpHybridize Operation = "hybridize"

	// OpResolve folds the two smallest tensions into the antithesis accumulator.
	OpResolve Operation = "resolve"

	// OpRecurse repeatedly hybridizes the closest pair of tensions.
	OpRecurse Operation = "recurse"

	// OpCheck evaluates the invariant.
	OpCheck Operation = "check"
)

// Phi is the golden ratio (1+√5)/2.
var Phi = (1 + math.Sqrt(5)) / 2

// InvPhi is 1/φ = φ-1, the damping factor applied by Hybridize.
var InvPhi = 1 / Phi

// Operator is the set of state transitions the generator drives.
// Engine implements it; instrumented wrappers can too.
type Operator interface {
	Hybridize(s State, i, j int) (State, error)
	Resolve(s State) (State, error)
	Recurse(s State, depth int) (State, error)
}

// Engine applies dialectic operators under a configured recursion bound and
// invariant tolerance. It holds no mutable state and is safe for concurrent
// use.
type Engine struct {
	config *EngineConfig
}

// New creates an Engine. A nil config selects DefaultEngineConfig.
func New(cfg *EngineConfig) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultEngineConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := *cfg
	return &Engine{config: &c}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() EngineConfig {
	return *e.config
}

// Hybridize appends t_i + t_j - min(t_i, t_j)/φ to the tensions and raises
// the synthesis by the same amount.
func (e *Engine) Hybridize(s State, i, j int) (State, error) {
	return Hybridize(s, i, j)
}

// Resolve removes the two smallest tensions and adds their average to the
// antithesis accumulator.
func (e *Engine) Resolve(s State) (State, error) {
	return Resolve(s)
}

// Recurse hybridizes the numerically closest pair depth times, re-selecting
// the pair after each step. Depth zero returns s unchanged.
func (e *Engine) Recurse(s State, depth int) (State, error) {
	if depth < 0 {
		return State{}, &ValueError{Param: "depth", Value: depth, Message: "must be non-negative"}
	}
	if depth > e.config.MaxDepth {
		return State{}, &RecursionLimitError{Depth: depth, Limit: e.config.MaxDepth}
	}
	if depth == 0 {
		return s, nil
	}
	if len(s.tensions) < 2 {
		return State{}, &IndexError{Op: OpRecurse, Len: len(s.tensions)}
	}

	tensions := make([]float64, len(s.tensions), len(s.tensions)+depth)
	copy(tensions, s.tensions)
	synthesis := s.synthesis
	order := sortedOrder(tensions)

	for range depth {
		i, j := closestAdjacent(tensions, order)
		t := hybridValue(tensions[i], tensions[j])
		if err := checkFinite(OpRecurse, t, synthesis+t); err != nil {
			return State{}, err
		}
		tensions = append(tensions, t)
		synthesis += t
		order = insertOrdered(order, tensions, len(tensions)-1)
	}

	return State{
		tensions:   tensions,
		synthesis:  synthesis,
		antithesis: s.antithesis,
	}, nil
}

// CheckInvariant reports whether S ≥ ΣT + A holds within the configured
// tolerance.
func (e *Engine) CheckInvariant(s State) bool {
	return CheckInvariant(s, e.config.Tolerance)
}

// Hybridize is the pure hybridization operator. See Engine.Hybridize.
func Hybridize(s State, i, j int) (State, error) {
	n := len(s.tensions)
	if i < 0 || j < 0 || i >= n || j >= n || i == j {
		return State{}, &IndexError{Op: OpHybridize, I: i, J: j, Len: n}
	}

	t := hybridValue(s.tensions[i], s.tensions[j])
	if err := checkFinite(OpHybridize, t, s.synthesis+t); err != nil {
		return State{}, err
	}
	tensions := make([]float64, n, n+1)
	copy(tensions, s.tensions)
	tensions = append(tensions, t)

	return State{
		tensions:   tensions,
		synthesis:  s.synthesis + t,
		antithesis: s.antithesis,
	}, nil
}

// Resolve is the pure resolution operator. Ties between equal tensions are
// broken by lower index. A single remaining tension is resolved entirely
// into the accumulator.
func Resolve(s State) (State, error) {
	n := len(s.tensions)
	switch n {
	case 0:
		return State{}, &EmptyStateError{Op: OpResolve}
	case 1:
		return State{
			tensions:   []float64{},
			synthesis:  s.synthesis,
			antithesis: s.antithesis + s.tensions[0],
		}, nil
	}

	first, second := smallestPair(s.tensions)
	tensions := make([]float64, 0, n-2)
	for k, t := range s.tensions {
		if k == first || k == second {
			continue
		}
		tensions = append(tensions, t)
	}

	return State{
		tensions:   tensions,
		synthesis:  s.synthesis,
		antithesis: s.antithesis + (s.tensions[first]+s.tensions[second])/2,
	}, nil
}

// CheckInvariant reports whether S ≥ ΣT + A - tolerance.
func CheckInvariant(s State, tolerance float64) bool {
	return s.Slack() >= -tolerance
}

// ClosestPair returns the indices i < j of the two tensions with the smallest
// absolute difference, ties broken by lowest i then lowest j. ok is false when
// fewer than two tensions exist.
func ClosestPair(s State) (i, j int, ok bool) {
	if len(s.tensions) < 2 {
		return 0, 0, false
	}
	i, j = closestAdjacent(s.tensions, sortedOrder(s.tensions))
	return i, j, true
}

// checkFinite rejects a hybrid tension or synthesis that left the float64
// range.
func checkFinite(op Operation, tension, synthesis float64) error {
	if math.IsInf(tension, 0) || math.IsNaN(tension) {
		return &ValueError{Param: string(op) + " tension", Value: tension, Message: "overflows float64"}
	}
	if math.IsInf(synthesis, 0) || math.IsNaN(synthesis) {
		return &ValueError{Param: "synthesis", Value: synthesis, Message: "overflows float64"}
	}
	return nil
}

func hybridValue(a, b float64) float64 {
	return a + b - math.Min(a, b)*InvPhi
}

// smallestPair returns the indices of the smallest and second smallest
// tensions, preferring lower indices on ties.
func smallestPair(tensions []float64) (int, int) {
	first := 0
	for k := 1; k < len(tensions); k++ {
		if tensions[k] < tensions[first] {
			first = k
		}
	}
	second := -1
	for k := range tensions {
		if k == first {
			continue
		}
		if second == -1 || tensions[k] < tensions[second] {
			second = k
		}
	}
	return first, second
}

// sortedOrder returns tension indices ordered by (value, index).
func sortedOrder(tensions []float64) []int {
	order := make([]int, len(tensions))
	for k := range order {
		order[k] = k
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case tensions[a] < tensions[b]:
			return -1
		case tensions[a] > tensions[b]:
			return 1
		default:
			return 0
		}
	})
	return order
}

// insertOrdered inserts idx into order keeping (value, index) ordering. idx
// must be larger than every index already present.
func insertOrdered(order []int, tensions []float64, idx int) []int {
	v := tensions[idx]
	pos := sort.Search(len(order), func(k int) bool {
		return tensions[order[k]] > v
	})
	return slices.Insert(order, pos, idx)
}

// closestAdjacent scans neighbours in (value, index) order. The lowest-index
// pair among those with the minimal difference is always adjacent in that
// order, so the scan agrees with an exhaustive search.
func closestAdjacent(tensions []float64, order []int) (int, int) {
	bestI, bestJ := -1, -1
	bestDiff := math.Inf(1)
	for k := 1; k < len(order); k++ {
		a, b := order[k-1], order[k]
		if a > b {
			a, b = b, a
		}
		diff := tensions[order[k]] - tensions[order[k-1]]
		if diff < bestDiff || (diff == bestDiff && (a < bestI || (a == bestI && b < bestJ))) {
			bestI, bestJ, bestDiff = a, b, diff
		}
	}
	return bestI, bestJ
}

// String implements fmt.Stringer.
func (o Operation) String() string {
	return string(o)
}

var _ Operator = (*Engine)(nil)
