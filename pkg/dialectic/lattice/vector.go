// Package lattice implements the integer (T, A, S) vector model of the
// generative dialectic: thesis, antithesis and synthesis counts combined by
// additive hybridation and stabilised by resolution.
//
// A vector is balanced when S ≥ T + A. Resolve is the smallest correction
// that balances a vector and is idempotent. Generate explores the closure of
// the three base vectors under hybridation followed by resolution; Cube27
// and AnalyzeCube describe the {0,1,2}³ space and its anchoring rule
// (A of the first vector equals T of the second) used for recursive
// embedding.
package lattice

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Vector is a dialectic state in ℕ³.
type Vector struct {
	T int `json:"t"`
	A int `json:"a"`
	S int `json:"s"`
}

// Base vectors.
var (
	Thesis     = Vector{T: 1}
	Antithesis = Vector{A: 1}
	Synthesis  = Vector{S: 1}
)

// Balanced reports whether S ≥ T + A.
func (v Vector) Balanced() bool {
	return v.S >= v.T+v.A
}

// String renders the vector as "(t, a, s)".
func (v Vector) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.T, v.A, v.S)
}

// Hybridize adds two vectors component-wise. The result may be unbalanced.
func Hybridize(v1, v2 Vector) Vector {
	return Vector{T: v1.T + v2.T, A: v1.A + v2.A, S: v1.S + v2.S}
}

// Resolve raises S to T + A when the vector is unbalanced and returns
// balanced vectors unchanged.
func Resolve(v Vector) Vector {
	if v.Balanced() {
		return v
	}
	v.S = v.T + v.A
	return v
}

// AnchorValid reports whether v2 can be embedded after v1: the antithesis of
// the first must equal the thesis of the second.
func AnchorValid(v1, v2 Vector) bool {
	return v1.A == v2.T
}

// Compare orders vectors lexicographically by (T, A, S).
func Compare(a, b Vector) int {
	if c := cmp.Compare(a.T, b.T); c != 0 {
		return c
	}
	if c := cmp.Compare(a.A, b.A); c != 0 {
		return c
	}
	return cmp.Compare(a.S, b.S)
}

// ParseVector parses "t,a,s" (surrounding parentheses and spaces allowed).
func ParseVector(text string) (Vector, error) {
	trimmed := strings.Trim(strings.TrimSpace(text), "()")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 3 {
		return Vector{}, fmt.Errorf("vector %q: expected three components", text)
	}

	var values [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Vector{}, fmt.Errorf("vector %q: component %d: %w", text, i, err)
		}
		if n < 0 {
			return Vector{}, fmt.Errorf("vector %q: component %d must be non-negative", text, i)
		}
		values[i] = n
	}
	return Vector{T: values[0], A: values[1], S: values[2]}, nil
}
