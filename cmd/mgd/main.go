// mgd drives the dialectic tension engine from the command line.
//
// Every command takes a seed, applies an operator and prints the resulting
// state together with the invariant verdict (S ≥ ΣT + A).
//
// Usage:
//
//	# Hybridize the first two tensions
//	mgd hybridize 0 1 --seed 1,2,3
//
//	# Fold the two smallest tensions into the antithesis accumulator
//	mgd resolve --seed 1,2,3
//
//	# Hybridize the closest pair five times
//	mgd recurse 5 --seed-file seed.yaml
//
//	# Check an explicit state
//	mgd check --seed 1,2,3 --synthesis 5
//
//	# Stream states and re-seed whenever the seed file changes
//	mgd generate --seed-file seed.yaml --watch
//
// Exit codes: 0 when the invariant holds, 1 when it is violated and 2 on
// malformed input.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
