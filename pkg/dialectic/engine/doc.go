// Package engine implements the dialectic tension engine.
//
// # Overview
//
// A State holds an ordered sequence of tension scores T, a synthesis S and an
// antithesis accumulator A. Three operators produce new states without
// touching their input:
//
//   - Hybridize(s, i, j) appends t_i + t_j - min(t_i, t_j)/φ and adds it to S
//   - Resolve(s) folds the two smallest tensions into A as their average
//   - Recurse(s, depth) hybridizes the closest pair depth times
//
// After every operation the invariant S ≥ ΣT + A is expected to hold. A
// violation is a diagnostic reported by CheckInvariant, never an error.
//
// # Usage
//
//	eng, err := engine.New(engine.DefaultEngineConfig())
//	if err != nil {
//	    return err
//	}
//
//	seed, err := engine.NewState([]float64{1, 2, 3})
//	if err != nil {
//	    return err
//	}
//
//	next, err := eng.Hybridize(seed, 0, 1)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(next, eng.CheckInvariant(next))
//
// # Generation
//
// Generator yields an unbounded, lazily computed sequence of states from a
// seed by cycling a schedule of steps. It can only be restarted by reseeding:
//
//	gen := engine.NewGenerator(eng, seed, engine.WithMaxSteps(10))
//	for step, state := range gen.All() {
//	    fmt.Println(step, state)
//	}
//	if err := gen.Err(); err != nil {
//	    return err
//	}
//
// # Errors
//
// Operators fail with *IndexError, *EmptyStateError, *ValueError or
// *RecursionLimitError. Each wraps a sentinel (ErrIndexOutOfRange,
// ErrEmptyState, ErrInvalidValue, ErrRecursionLimit) for errors.Is checks.
package engine
