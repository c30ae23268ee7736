package main

import (
	"fmt"
	"strconv"
	"strings"

	"dialectic-hq/mgd/pkg/cli"
	"dialectic-hq/mgd/pkg/dialectic/engine"
)

// result is the output of a single operator application.
type result struct {
	Operation     string       `json:"operation"`
	Params        string       `json:"params,omitempty"`
	Step          *int         `json:"step,omitempty"`
	State         engine.State `json:"state"`
	Slack         float64      `json:"slack"`
	InvariantHeld bool         `json:"invariant_held"`
	RunID         string       `json:"run_id"`
}

func newResult(sess *session, operation, params string, state engine.State) result {
	return result{
		Operation:     operation,
		Params:        params,
		State:         state,
		Slack:         state.Slack(),
		InvariantHeld: sess.runner.Engine().CheckInvariant(state),
		RunID:         sess.runner.RunID(),
	}
}

// RenderText implements cli.TextRenderer.
func (r result) RenderText(s *cli.Styles) string {
	var sb strings.Builder

	title := r.Operation
	if r.Params != "" {
		title += "(" + r.Params + ")"
	}
	if r.Step != nil {
		title = fmt.Sprintf("[%d] %s", *r.Step, title)
	}
	sb.WriteString(s.Title.Render(title))
	sb.WriteString("\n")

	writeField(&sb, s, "tensions", formatTensions(r.State.Tensions()))
	writeField(&sb, s, "synthesis", formatFloat(r.State.Synthesis()))
	writeField(&sb, s, "antithesis", formatFloat(r.State.Antithesis()))
	writeField(&sb, s, "slack", formatFloat(r.Slack))
	sb.WriteString("  ")
	sb.WriteString(s.Verdict(r.InvariantHeld))
	sb.WriteString("\n")
	return sb.String()
}

func writeField(sb *strings.Builder, s *cli.Styles, label, value string) {
	fmt.Fprintf(sb, "  %s %s\n", s.Label.Render(fmt.Sprintf("%-11s", label+":")), s.Value.Render(value))
}

func formatTensions(tensions []float64) string {
	parts := make([]string, len(tensions))
	for i, t := range tensions {
		parts[i] = formatFloat(t)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

// verdict returns the error reported for a result.
func (r result) verdict() error {
	if r.InvariantHeld {
		return nil
	}
	return fmt.Errorf("%w: slack %s", cli.ErrInvariantViolated, formatFloat(r.Slack))
}
