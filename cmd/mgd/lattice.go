package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dialectic-hq/mgd/pkg/cli"
	"dialectic-hq/mgd/pkg/dialectic/lattice"
)

func newLatticeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lattice",
		Short: "Explore the integer (T, A, S) vector model",
		Long: `Lattice works on integer vectors (T, A, S). Hybridation adds vectors and
resolution raises S to T + A, so every resolved vector is balanced.`,
	}

	cmd.AddCommand(
		newLatticeGenerateCmd(a),
		newLatticeCubeCmd(a),
		newLatticeTriadCmd(a),
	)
	return cmd
}

// closureOutput wraps a lattice closure for text rendering.
type closureOutput struct {
	lattice.Closure
}

// RenderText implements cli.TextRenderer.
func (c closureOutput) RenderText(s *cli.Styles) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render("lattice closure"))
	sb.WriteString("\n")
	for i, n := range c.NewPerIteration {
		fmt.Fprintf(&sb, "  %s %s\n", s.Label.Render(fmt.Sprintf("iteration %d:", i+1)), s.Value.Render(strconv.Itoa(n)+" new"))
	}
	fmt.Fprintf(&sb, "  %s %s\n", s.Label.Render("states:"), s.Value.Render(strconv.Itoa(len(c.States))))
	if c.Stabilized {
		sb.WriteString("  " + s.Muted.Render("stabilized") + "\n")
	}
	return sb.String()
}

func newLatticeGenerateCmd(a *app) *cobra.Command {
	var iterations int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Close the base vectors under hybridation and resolution",
		Long: `Generate starts from thesis (1,0,0), antithesis (0,1,0) and synthesis
(0,0,1), hybridizes every pair of known states, resolves each hybrid and
adds the new ones, for at most --iterations rounds.

Examples:
  mgd lattice generate --iterations 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			closure, err := lattice.Generate(iterations)
			if err != nil {
				return cli.UsageError(err)
			}
			return a.print(closureOutput{closure})
		},
	}
	cmd.Flags().IntVar(&iterations, "iterations", 3, "maximum number of rounds")
	return cmd
}

// cubeOutput wraps cube statistics for text rendering.
type cubeOutput struct {
	lattice.CubeStats
}

// RenderText implements cli.TextRenderer.
func (c cubeOutput) RenderText(s *cli.Styles) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render("C27 anchoring"))
	sb.WriteString("\n")
	writeField(&sb, s, "points", strconv.Itoa(c.Points))
	writeField(&sb, s, "pairs", strconv.Itoa(c.TotalPairs))
	writeField(&sb, s, "anchors", strconv.Itoa(c.ValidAnchors))
	writeField(&sb, s, "ratio", strconv.FormatFloat(c.RatioPercentage, 'f', 2, 64)+"%")
	writeField(&sb, s, "balanced", strconv.Itoa(c.BalancedPoints))
	return sb.String()
}

func newLatticeCubeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cube",
		Short: "Analyze the anchoring rule on {0,1,2}³",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(cubeOutput{lattice.AnalyzeCube()})
		},
	}
}

// triadOutput wraps a triad for text rendering.
type triadOutput struct {
	lattice.Triad
}

// RenderText implements cli.TextRenderer.
func (t triadOutput) RenderText(s *cli.Styles) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render(t.Concept1 + " × " + t.Concept2))
	sb.WriteString("\n")
	writeField(&sb, s, "tension", t.Tension.String())
	writeField(&sb, s, "synthesis", t.Synthesis.String())
	sb.WriteString("  " + s.Verdict(t.Balanced) + "\n")
	return sb.String()
}

func newLatticeTriadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "triad V1 V2",
		Short: "Hybridize and resolve two vectors",
		Long: `Triad hybridizes two vectors given as "t,a,s" and resolves the tension.
The base vectors are labelled with their concepts.

Examples:
  mgd lattice triad 1,0,0 0,1,0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v1, err := lattice.ParseVector(args[0])
			if err != nil {
				return cli.UsageError(err)
			}
			v2, err := lattice.ParseVector(args[1])
			if err != nil {
				return cli.UsageError(err)
			}
			return a.print(triadOutput{lattice.NewTriad(v1, v2, lattice.DefaultConcepts())})
		},
	}
}

// print writes data with the formatter selected by --format.
func (a *app) print(data any) error {
	formatter, err := a.formatter()
	if err != nil {
		return err
	}
	return formatter.FormatTo(a.stdout, data)
}
