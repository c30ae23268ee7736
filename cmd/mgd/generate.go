package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dialectic-hq/mgd/pkg/cli"
	"dialectic-hq/mgd/pkg/config"
	"dialectic-hq/mgd/pkg/dialectic/engine"
	"dialectic-hq/mgd/pkg/dialectic/runner"
	"dialectic-hq/mgd/pkg/dialectic/seed"
)

type generateFlags struct {
	seed     seedFlags
	steps    int
	schedule []string
	watch    bool
}

func newGenerateCmd(a *app) *cobra.Command {
	var gf generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Stream the states produced by a step schedule",
		Long: `Generate prints the seed and then one state per step, cycling through
the schedule. Steps are "recurse", "recurse:<depth>", "resolve" and
"hybridize:<i>:<j>". The run stops after --steps transitions (0 means
unbounded) or at the first failing step.

With --watch the seed file is watched and every change re-seeds the
sequence. The configuration file is reloaded on each change, so a new
generator schedule applies to the next run. The command then runs until
interrupted.

Examples:
  mgd generate --seed 1,2,3 --steps 5
  mgd generate --seed 1,2,3,4 --schedule recurse,resolve --steps 4
  mgd generate --seed-file seed.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, &gf)
		},
	}

	gf.seed.register(cmd)
	cmd.Flags().IntVar(&gf.steps, "steps", -1, "transitions after the seed, 0 for unbounded (defaults to generator.max_steps)")
	cmd.Flags().StringSliceVar(&gf.schedule, "schedule", nil, "step schedule (defaults to generator.schedule)")
	cmd.Flags().BoolVar(&gf.watch, "watch", false, "re-seed when the seed file changes (defaults to seed.watch)")
	return cmd
}

// plan resolves the schedule and step bound from cfg and the flags.
func (gf *generateFlags) plan(cmd *cobra.Command, cfg *config.Config) ([]engine.Step, int, error) {
	texts := cfg.Generator.Schedule
	if cmd.Flags().Changed("schedule") {
		texts = gf.schedule
	}
	schedule, err := engine.ParseSchedule(texts)
	if err != nil {
		return nil, 0, cli.UsageError(err)
	}

	maxSteps := cfg.Generator.MaxSteps
	if gf.steps >= 0 {
		maxSteps = gf.steps
	}
	return schedule, maxSteps, nil
}

func (a *app) generate(cmd *cobra.Command, gf *generateFlags) error {
	ctx := cmd.Context()
	return a.withSession(ctx, func(sess *session) error {
		state, err := gf.seed.state(cmd, sess.cfg)
		if err != nil {
			return err
		}

		schedule, maxSteps, err := gf.plan(cmd, sess.cfg)
		if err != nil {
			return err
		}
		gen := sess.runner.Generator(ctx, state, schedule, maxSteps)

		watch := sess.cfg.Seed.Watch
		if cmd.Flags().Changed("watch") {
			watch = gf.watch
		}
		if !watch {
			violated, _, err := a.drain(ctx, sess, gen, nil)
			return generateVerdict(violated, err)
		}

		path := gf.seed.path(sess.cfg)
		if path == "" {
			return cli.UsageError(errors.New("--watch requires --seed-file or seed.path"))
		}
		return a.watch(ctx, cmd, gf, sess, gen, path)
	})
}

// drain prints states until the generator stops, ctx is done or a new seed
// arrives on reseeds. It reports whether any printed state broke the
// invariant and returns the seed that interrupted it, if any.
func (a *app) drain(ctx context.Context, sess *session, gen *runner.Generator, reseeds <-chan engine.State) (bool, *engine.State, error) {
	violated := false
	for gen.Next() {
		step := gen.Step()
		name := "step"
		if step == 0 {
			name = engine.OpSeed.String()
		}
		res := newResult(sess, name, "", gen.State())
		res.Step = &step
		if !res.InvariantHeld {
			violated = true
		}
		if err := sess.formatter.FormatTo(a.stdout, res); err != nil {
			return violated, nil, cli.NewCommandError("generate", err)
		}

		select {
		case <-ctx.Done():
			return violated, nil, nil
		case s := <-reseeds:
			return violated, &s, nil
		default:
		}
	}

	if err := gen.Err(); err != nil {
		return violated, nil, cli.UsageError(err)
	}
	return violated, nil, nil
}

// watch drains the generator and re-seeds it from the seed file until ctx
// is cancelled.
func (a *app) watch(ctx context.Context, cmd *cobra.Command, gf *generateFlags, sess *session, gen *runner.Generator, path string) error {
	watcher, err := seed.NewWatcher(&seed.WatcherConfig{
		Path:             path,
		DebounceInterval: sess.cfg.Seed.DebounceInterval,
	}, sess.tel.Logger())
	if err != nil {
		return cli.UsageError(err)
	}

	reseeds := make(chan engine.State, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watcher.Watch(gctx, func(s engine.State) error {
			select {
			case reseeds <- s:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	violated := false
	g.Go(func() error {
		defer watcher.Stop()
		for {
			v, next, err := a.drain(gctx, sess, gen, reseeds)
			violated = violated || v
			if err != nil {
				// Failed runs wait for the next seed.
				sess.tel.Logger().Warn("generation stopped", "error", err)
			}

			if next == nil {
				select {
				case <-gctx.Done():
					return nil
				case s := <-reseeds:
					next = &s
				}
			}
			gen = a.restart(gctx, cmd, gf, sess, gen, *next)
		}
	})

	if err := g.Wait(); err != nil {
		return cli.NewCommandError("generate", err)
	}
	return generateVerdict(violated, nil)
}

// restart reloads the configuration file, when one is in use, and starts a
// new run from s. A configuration that fails to load or plan keeps the
// current schedule.
func (a *app) restart(ctx context.Context, cmd *cobra.Command, gf *generateFlags, sess *session, gen *runner.Generator, s engine.State) *runner.Generator {
	if a.flags.cfgFile != "" {
		if err := config.ReloadConfig(a.flags.cfgFile); err != nil {
			sess.tel.Logger().Warn("configuration reload skipped", "path", a.flags.cfgFile, "error", err)
		} else if schedule, maxSteps, err := gf.plan(cmd, config.GetConfig()); err != nil {
			sess.tel.Logger().Warn("configuration reload skipped", "path", a.flags.cfgFile, "error", err)
		} else {
			sess.tel.Logger().Info("configuration reloaded", "path", a.flags.cfgFile)
			gen = sess.runner.Generator(ctx, s, schedule, maxSteps)
		}
	}

	gen.Reseed(s)
	return gen
}

func generateVerdict(violated bool, err error) error {
	if err != nil {
		return err
	}
	if violated {
		return fmt.Errorf("%w: at least one generated state", cli.ErrInvariantViolated)
	}
	return nil
}
