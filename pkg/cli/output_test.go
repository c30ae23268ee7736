package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

type rendered struct{ N int }

func (r rendered) RenderText(s *Styles) string {
	return s.Title.Render("n") + " = " + s.Value.Render("42")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{input: "", want: FormatText},
		{input: "text", want: FormatText},
		{input: "JSON", want: FormatJSON},
		{input: "csv", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{name: "renderer", data: rendered{N: 42}, want: "n = 42\n"},
		{name: "stringer fallback", data: 3.5, want: "3.5\n"},
		{name: "keeps trailing newline", data: "done\n", want: "done\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			f := NewFormatter(FormatText, PlainStyles())
			if err := f.FormatTo(&buf, tt.data); err != nil {
				t.Fatalf("FormatTo() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("FormatTo() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, nil)
	if err := f.FormatTo(&buf, rendered{N: 42}); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["N"] != 42 {
		t.Errorf("unexpected JSON: %s", buf.String())
	}
}

func TestNewStyles_NonTerminal(t *testing.T) {
	styles := NewStyles(&bytes.Buffer{})
	if styles.Colored() {
		t.Error("styles for a buffer must not be colored")
	}
	if got := styles.Verdict(true); got != "✓ invariant holds" {
		t.Errorf("Verdict(true) = %q", got)
	}
	if got := styles.Verdict(false); got != "✗ invariant violated" {
		t.Errorf("Verdict(false) = %q", got)
	}
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
