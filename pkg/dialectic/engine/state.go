package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// State is an immutable snapshot of the engine: the tension sequence T, the
// synthesis S and the antithesis accumulator A.
//
// The zero value is a valid empty state. Accessors return copies, so a State
// can be shared freely between callers.
type State struct {
	tensions   []float64
	synthesis  float64
	antithesis float64
}

// NewState creates a seed state from a non-empty sequence of finite,
// non-negative tensions. The synthesis is the tension sum and the antithesis
// accumulator starts at zero, so the invariant holds by construction.
func NewState(seed []float64) (State, error) {
	if len(seed) == 0 {
		return State{}, &ValueError{Param: "seed", Value: "[]", Message: "at least one tension is required"}
	}
	for i, t := range seed {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return State{}, &ValueError{Param: fmt.Sprintf("seed[%d]", i), Value: t, Message: "tension must be finite"}
		}
		if t < 0 {
			return State{}, &ValueError{Param: fmt.Sprintf("seed[%d]", i), Value: t, Message: "tension must be non-negative"}
		}
	}

	tensions := cloneTensions(seed)
	total := sum(tensions)
	if math.IsInf(total, 0) {
		return State{}, &ValueError{Param: "seed", Value: total, Message: "tension sum overflows"}
	}
	return State{
		tensions:  tensions,
		synthesis: total,
	}, nil
}

// StateOf builds a state from explicit parts. Values only need to be finite;
// the invariant is not enforced, which lets callers inspect arbitrary states
// with CheckInvariant.
func StateOf(tensions []float64, synthesis, antithesis float64) (State, error) {
	for i, t := range tensions {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return State{}, &ValueError{Param: fmt.Sprintf("tensions[%d]", i), Value: t, Message: "tension must be finite"}
		}
	}
	if math.IsNaN(synthesis) || math.IsInf(synthesis, 0) {
		return State{}, &ValueError{Param: "synthesis", Value: synthesis, Message: "must be finite"}
	}
	if math.IsNaN(antithesis) || math.IsInf(antithesis, 0) {
		return State{}, &ValueError{Param: "antithesis", Value: antithesis, Message: "must be finite"}
	}
	return State{
		tensions:   cloneTensions(tensions),
		synthesis:  synthesis,
		antithesis: antithesis,
	}, nil
}

// Tensions returns a copy of the tension sequence.
func (s State) Tensions() []float64 {
	return cloneTensions(s.tensions)
}

// Tension returns the tension at index i. It panics if i is out of range.
func (s State) Tension(i int) float64 {
	return s.tensions[i]
}

// Len returns the number of tensions.
func (s State) Len() int {
	return len(s.tensions)
}

// Synthesis returns S.
func (s State) Synthesis() float64 {
	return s.synthesis
}

// Antithesis returns A.
func (s State) Antithesis() float64 {
	return s.antithesis
}

// TensionSum returns the sum of the current tensions.
func (s State) TensionSum() float64 {
	return sum(s.tensions)
}

// Slack returns S - (ΣT + A). The invariant holds when the slack is not
// below minus the tolerance.
func (s State) Slack() float64 {
	return s.synthesis - (s.TensionSum() + s.antithesis)
}

// ApproxEqual reports whether two states have the same length and all
// components within tolerance of each other.
func (s State) ApproxEqual(other State, tolerance float64) bool {
	if len(s.tensions) != len(other.tensions) {
		return false
	}
	for i := range s.tensions {
		if math.Abs(s.tensions[i]-other.tensions[i]) > tolerance {
			return false
		}
	}
	return math.Abs(s.synthesis-other.synthesis) <= tolerance &&
		math.Abs(s.antithesis-other.antithesis) <= tolerance
}

// String renders the state as "T=[...] S=... A=...".
func (s State) String() string {
	parts := make([]string, len(s.tensions))
	for i, t := range s.tensions {
		parts[i] = strconv.FormatFloat(t, 'g', 12, 64)
	}
	return fmt.Sprintf("T=[%s] S=%s A=%s",
		strings.Join(parts, ", "),
		strconv.FormatFloat(s.synthesis, 'g', 12, 64),
		strconv.FormatFloat(s.antithesis, 'g', 12, 64),
	)
}

type stateJSON struct {
	Tensions   []float64 `json:"tensions"`
	Synthesis  float64   `json:"synthesis"`
	Antithesis float64   `json:"antithesis"`
}

// MarshalJSON implements json.Marshaler.
func (s State) MarshalJSON() ([]byte, error) {
	tensions := s.tensions
	if tensions == nil {
		tensions = []float64{}
	}
	return json.Marshal(stateJSON{
		Tensions:   tensions,
		Synthesis:  s.synthesis,
		Antithesis: s.antithesis,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := StateOf(raw.Tensions, raw.Synthesis, raw.Antithesis)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func cloneTensions(in []float64) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, len(in))
	copy(out, in)
	return out
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
