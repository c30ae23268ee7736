package lattice

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Closure is the result of Generate.
type Closure struct {
	// NewPerIteration holds the number of states discovered by each
	// iteration that produced at least one.
	NewPerIteration []int `json:"new_per_iteration"`

	// States is every known state in Compare order.
	States []Vector `json:"states"`

	// Stabilized is true when an iteration discovered nothing new.
	Stabilized bool `json:"stabilized"`
}

// Generate hybridizes every unordered pair of known states, including a state
// with itself, resolves each hybrid and adds the unseen results. It starts
// from the three base vectors and runs at most maxIterations rounds,
// stopping early once a round adds nothing.
func Generate(maxIterations int) (Closure, error) {
	if maxIterations < 0 {
		return Closure{}, fmt.Errorf("max iterations must be non-negative, got %d", maxIterations)
	}

	known := map[Vector]struct{}{
		Thesis:     {},
		Antithesis: {},
		Synthesis:  {},
	}
	var closure Closure

	for range maxIterations {
		current := slices.SortedFunc(maps.Keys(known), Compare)
		found := make(map[Vector]struct{})

		for i, s1 := range current {
			for _, s2 := range current[i:] {
				stable := Resolve(Hybridize(s1, s2))
				if _, ok := known[stable]; !ok {
					found[stable] = struct{}{}
				}
			}
		}

		if len(found) == 0 {
			closure.Stabilized = true
			break
		}
		maps.Copy(known, found)
		closure.NewPerIteration = append(closure.NewPerIteration, len(found))
	}

	closure.States = slices.SortedFunc(maps.Keys(known), Compare)
	return closure, nil
}

// Cube27 returns {0,1,2}³ in lexicographic order.
func Cube27() []Vector {
	cube := make([]Vector, 0, 27)
	for t := 0; t < 3; t++ {
		for a := 0; a < 3; a++ {
			for s := 0; s < 3; s++ {
				cube = append(cube, Vector{T: t, A: a, S: s})
			}
		}
	}
	return cube
}

// CubeStats summarises the anchoring structure of the C27 cube.
type CubeStats struct {
	Points          int     `json:"points"`
	TotalPairs      int     `json:"total_pairs"`
	ValidAnchors    int     `json:"valid_anchors"`
	RatioPercentage float64 `json:"ratio_percentage"`
	BalancedPoints  int     `json:"balanced_points"`
}

// AnalyzeCube counts the ordered pairs of C27 that satisfy AnchorValid.
// The ratio is a percentage rounded to two decimals.
func AnalyzeCube() CubeStats {
	cube := Cube27()
	stats := CubeStats{
		Points:     len(cube),
		TotalPairs: len(cube) * len(cube),
	}

	for _, p1 := range cube {
		if p1.Balanced() {
			stats.BalancedPoints++
		}
		for _, p2 := range cube {
			if AnchorValid(p1, p2) {
				stats.ValidAnchors++
			}
		}
	}

	ratio := float64(stats.ValidAnchors) / float64(stats.TotalPairs) * 100
	stats.RatioPercentage = math.Round(ratio*100) / 100
	return stats
}
