package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette
var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#6C7A80")
)

// Styles holds the text styles for command output. Render single-line
// fragments only; lipgloss pads multi-line blocks.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	OK       lipgloss.Style
	Violated lipgloss.Style

	color bool
}

// NewStyles returns colored styles when w is a terminal and NO_COLOR is not
// set, and plain styles otherwise.
func NewStyles(w io.Writer) *Styles {
	if !IsTerminal(w) || os.Getenv("NO_COLOR") != "" {
		return PlainStyles()
	}

	r := lipgloss.NewRenderer(w)
	return &Styles{
		Title:    r.NewStyle().Bold(true).Foreground(colorAccent),
		Label:    r.NewStyle().Foreground(colorMuted),
		Value:    r.NewStyle().Bold(true),
		Muted:    r.NewStyle().Foreground(colorMuted),
		OK:       r.NewStyle().Bold(true).Foreground(colorSuccess),
		Violated: r.NewStyle().Bold(true).Foreground(colorError),
		color:    true,
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title:    plain,
		Label:    plain,
		Value:    plain,
		Muted:    plain,
		OK:       plain,
		Violated: plain,
	}
}

// Colored reports whether the styles emit ANSI colors.
func (s *Styles) Colored() bool {
	return s.color
}

// Verdict renders an invariant verdict.
func (s *Styles) Verdict(held bool) string {
	if held {
		return s.OK.Render("✓ invariant holds")
	}
	return s.Violated.Render("✗ invariant violated")
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
