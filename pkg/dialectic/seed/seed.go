// Package seed reads initial dialectic states from YAML files and command
// line lists, and watches seed files for changes.
//
// A seed file lists the tensions and may override the scalars:
//
//	tensions: [1, 2, 3]
//	synthesis: 6    # optional, defaults to the tension sum
//	antithesis: 0   # optional, defaults to 0
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"dialectic-hq/mgd/pkg/dialectic/engine"

	"gopkg.in/yaml.v3"
)

// File is the on-disk seed format.
type File struct {
	Tensions   []float64 `yaml:"tensions"`
	Synthesis  *float64  `yaml:"synthesis,omitempty"`
	Antithesis *float64  `yaml:"antithesis,omitempty"`
}

// State builds the engine state described by f. Without scalar overrides the
// result is a plain seed; with them the tensions only need to be finite.
func (f File) State() (engine.State, error) {
	if f.Synthesis == nil && f.Antithesis == nil {
		return engine.NewState(f.Tensions)
	}
	return Override(f.Tensions, f.Synthesis, f.Antithesis)
}

// Override builds a state from tensions with optional scalar overrides.
// A nil synthesis means ΣT and a nil antithesis means 0. With at least one
// override the values only need to be finite, so the state may violate the
// invariant.
func Override(tensions []float64, synthesis, antithesis *float64) (engine.State, error) {
	if synthesis == nil && antithesis == nil {
		return engine.NewState(tensions)
	}
	if len(tensions) == 0 {
		return engine.State{}, &engine.ValueError{Param: "seed", Value: "[]", Message: "at least one tension is required"}
	}

	var s, a float64
	for _, t := range tensions {
		s += t
	}
	if synthesis != nil {
		s = *synthesis
	}
	if antithesis != nil {
		a = *antithesis
	}
	return engine.StateOf(tensions, s, a)
}

// Parse decodes a YAML seed document. Unknown keys are rejected.
func Parse(data []byte) (engine.State, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return engine.State{}, errors.New("seed document is empty")
		}
		return engine.State{}, fmt.Errorf("decode seed: %w", err)
	}

	state, err := f.State()
	if err != nil {
		return engine.State{}, fmt.Errorf("invalid seed: %w", err)
	}
	return state, nil
}

// Load reads and parses the seed file at path.
func Load(path string) (engine.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.State{}, fmt.Errorf("read seed file %q: %w", path, err)
	}

	state, err := Parse(data)
	if err != nil {
		return engine.State{}, fmt.Errorf("seed file %q: %w", path, err)
	}
	return state, nil
}

// ParseList parses a comma separated list of numbers such as "1, 2.5, 3".
// Validation of the values is left to the engine.
func ParseList(text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty tension list")
	}

	parts := strings.Split(text, ",")
	values := make([]float64, 0, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("tension %d: %q is not a number", i, strings.TrimSpace(part))
		}
		values = append(values, v)
	}
	return values, nil
}

// Marshal renders state in the seed file format.
func Marshal(state engine.State) ([]byte, error) {
	s, a := state.Synthesis(), state.Antithesis()
	return yaml.Marshal(File{
		Tensions:   state.Tensions(),
		Synthesis:  &s,
		Antithesis: &a,
	})
}
