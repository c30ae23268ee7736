package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dialectic-hq/mgd/pkg/cli"
	"dialectic-hq/mgd/pkg/config"
	"dialectic-hq/mgd/pkg/dialectic/engine"
	"dialectic-hq/mgd/pkg/dialectic/seed"
)

// seedFlags selects the starting state of a command.
type seedFlags struct {
	tensions   string
	file       string
	synthesis  float64
	antithesis float64
}

func (f *seedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.tensions, "seed", "", "comma separated seed tensions, e.g. 1,2,3")
	cmd.Flags().StringVar(&f.file, "seed-file", "", "YAML seed file (defaults to seed.path from config)")
	cmd.Flags().Float64Var(&f.synthesis, "synthesis", 0, "override the synthesis S (defaults to ΣT)")
	cmd.Flags().Float64Var(&f.antithesis, "antithesis", 0, "override the antithesis accumulator A (defaults to 0)")
}

// path returns the seed file in effect, if any.
func (f *seedFlags) path(cfg *config.Config) string {
	if f.file != "" {
		return f.file
	}
	if f.tensions == "" {
		return cfg.Seed.Path
	}
	return ""
}

// state builds the seed state from the flags. Any failure is a usage error.
func (f *seedFlags) state(cmd *cobra.Command, cfg *config.Config) (engine.State, error) {
	if f.tensions != "" && f.file != "" {
		return engine.State{}, cli.UsageError(errors.New("--seed and --seed-file are mutually exclusive"))
	}

	var synthesis, antithesis *float64
	if cmd.Flags().Changed("synthesis") {
		synthesis = &f.synthesis
	}
	if cmd.Flags().Changed("antithesis") {
		antithesis = &f.antithesis
	}

	var tensions []float64
	switch path := f.path(cfg); {
	case f.tensions != "":
		list, err := seed.ParseList(f.tensions)
		if err != nil {
			return engine.State{}, cli.UsageError(fmt.Errorf("invalid --seed: %w", err))
		}
		tensions = list
	case path != "":
		loaded, err := seed.Load(path)
		if err != nil {
			return engine.State{}, cli.UsageError(err)
		}
		if synthesis == nil && antithesis == nil {
			return loaded, nil
		}
		tensions = loaded.Tensions()
		if synthesis == nil {
			s := loaded.Synthesis()
			synthesis = &s
		}
		if antithesis == nil {
			a := loaded.Antithesis()
			antithesis = &a
		}
	default:
		return engine.State{}, cli.UsageError(errors.New("a seed is required (--seed or --seed-file)"))
	}

	state, err := seed.Override(tensions, synthesis, antithesis)
	if err != nil {
		return engine.State{}, cli.UsageError(err)
	}
	return state, nil
}

// intArg parses the positional argument at idx.
func intArg(args []string, idx int, name string) (int, error) {
	v, err := strconv.Atoi(args[idx])
	if err != nil {
		return 0, cli.UsageError(fmt.Errorf("%s must be an integer, got %q", name, args[idx]))
	}
	return v, nil
}
