package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is human readable text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output, one document per result.
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// TextRenderer is implemented by results with a custom text rendering.
type TextRenderer interface {
	RenderText(styles *Styles) string
}

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// TextFormatter formats output as styled text.
type TextFormatter struct {
	Styles *Styles
}

// FormatTo writes data to w. Values implementing TextRenderer render
// themselves; anything else is printed with %v.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	styles := f.Styles
	if styles == nil {
		styles = PlainStyles()
	}

	var text string
	if r, ok := data.(TextRenderer); ok {
		text = r.RenderText(styles)
	} else {
		text = fmt.Sprintf("%v", data)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to w in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// NewFormatter creates a formatter for format. Styles only apply to text.
func NewFormatter(format OutputFormat, styles *Styles) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	default:
		return &TextFormatter{Styles: styles}
	}
}
