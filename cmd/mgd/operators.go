package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dialectic-hq/mgd/pkg/cli"
	"dialectic-hq/mgd/pkg/dialectic/engine"
)

// operatorFunc applies one operator to the seed and describes its parameters.
type operatorFunc func(ctx context.Context, sess *session, state engine.State) (engine.State, error)

// runOperator loads the seed, applies fn and prints the result.
func (a *app) runOperator(cmd *cobra.Command, sf *seedFlags, op engine.Operation, params string, fn operatorFunc) error {
	ctx := cmd.Context()
	return a.withSession(ctx, func(sess *session) error {
		state, err := sf.state(cmd, sess.cfg)
		if err != nil {
			return err
		}
		sess.runner.Seed(ctx, state)

		next, err := fn(ctx, sess, state)
		if err != nil {
			return cli.UsageError(fmt.Errorf("%s failed: %w", op, err))
		}

		res := newResult(sess, op.String(), params, next)
		if err := sess.formatter.FormatTo(a.stdout, res); err != nil {
			return cli.NewCommandError(op.String(), err)
		}
		return res.verdict()
	})
}

func newHybridizeCmd(a *app) *cobra.Command {
	var sf seedFlags
	cmd := &cobra.Command{
		Use:   "hybridize I J",
		Short: "Combine tensions I and J into a new tension",
		Long: `Hybridize appends t_i + t_j − min(t_i, t_j)/φ to the tensions and adds it
to the synthesis. Indices are zero based and must differ.

Examples:
  mgd hybridize 0 1 --seed 1,2,3
  mgd hybridize 2 0 --seed-file seed.yaml --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := intArg(args, 0, "I")
			if err != nil {
				return err
			}
			j, err := intArg(args, 1, "J")
			if err != nil {
				return err
			}
			return a.runOperator(cmd, &sf, engine.OpHybridize, fmt.Sprintf("i=%d, j=%d", i, j),
				func(ctx context.Context, sess *session, s engine.State) (engine.State, error) {
					return sess.runner.Hybridize(ctx, s, i, j)
				})
		},
	}
	sf.register(cmd)
	return cmd
}

func newResolveCmd(a *app) *cobra.Command {
	var sf seedFlags
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Fold the two smallest tensions into the antithesis accumulator",
		Long: `Resolve removes the two smallest tensions and adds their average to A.
A single remaining tension is folded into A entirely.

Examples:
  mgd resolve --seed 1,2,3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOperator(cmd, &sf, engine.OpResolve, "",
				func(ctx context.Context, sess *session, s engine.State) (engine.State, error) {
					return sess.runner.Resolve(ctx, s)
				})
		},
	}
	sf.register(cmd)
	return cmd
}

func newRecurseCmd(a *app) *cobra.Command {
	var sf seedFlags
	cmd := &cobra.Command{
		Use:   "recurse [DEPTH]",
		Short: "Hybridize the closest pair of tensions DEPTH times",
		Long: `Recurse hybridizes the numerically closest pair of tensions DEPTH times,
re-selecting the pair after every step. DEPTH defaults to 1 and is bounded
by engine.max_depth.

Examples:
  mgd recurse --seed 1,2,3
  mgd recurse 10 --seed 1,2,3 --metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth := 1
			if len(args) == 1 {
				d, err := intArg(args, 0, "DEPTH")
				if err != nil {
					return err
				}
				depth = d
			}
			return a.runOperator(cmd, &sf, engine.OpRecurse, fmt.Sprintf("depth=%d", depth),
				func(ctx context.Context, sess *session, s engine.State) (engine.State, error) {
					return sess.runner.Recurse(ctx, s, depth)
				})
		},
	}
	sf.register(cmd)
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var sf seedFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the invariant S ≥ ΣT + A for a state",
		Long: `Check evaluates the invariant for the given state without applying an
operator. Use --synthesis and --antithesis to describe arbitrary states.

Examples:
  mgd check --seed 1,2,3
  mgd check --seed 1,2,3 --synthesis 5   # violated, exits 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOperator(cmd, &sf, engine.OpCheck, "",
				func(ctx context.Context, sess *session, s engine.State) (engine.State, error) {
					sess.runner.Check(ctx, s)
					return s, nil
				})
		},
	}
	sf.register(cmd)
	return cmd
}
