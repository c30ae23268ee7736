package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"dialectic-hq/mgd/pkg/cli"
	"dialectic-hq/mgd/pkg/config"
)

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestRun_ExitCodes(t *testing.T) {
	seedFile := writeFile(t, "seed.yaml", "tensions: [1, 2, 3]\n")
	badConfig := writeFile(t, "config.yaml", "engine:\n  max_depth: -1\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "hybridize", args: []string{"hybridize", "0", "1", "--seed", "1,2,3"}, want: cli.ExitOK},
		{name: "resolve", args: []string{"resolve", "--seed", "1,2,3"}, want: cli.ExitOK},
		{name: "recurse default depth", args: []string{"recurse", "--seed", "1,2,3"}, want: cli.ExitOK},
		{name: "recurse zero depth", args: []string{"recurse", "0", "--seed", "4"}, want: cli.ExitOK},
		{name: "check seed file", args: []string{"check", "--seed-file", seedFile}, want: cli.ExitOK},
		{name: "check violated", args: []string{"check", "--seed", "1,2,3", "--synthesis", "5"}, want: cli.ExitViolated},
		{name: "check violated by antithesis", args: []string{"check", "--seed-file", seedFile, "--antithesis", "1"}, want: cli.ExitViolated},
		{name: "check negative tensions with synthesis", args: []string{"check", "--seed=-1,2", "--synthesis", "5"}, want: cli.ExitOK},
		{name: "check negative tensions violated", args: []string{"check", "--seed=-1,2", "--synthesis", "0"}, want: cli.ExitViolated},
		{name: "seed sum overflows", args: []string{"check", "--seed", "1e308,1e308"}, want: cli.ExitUsage},
		{name: "generate", args: []string{"generate", "--seed", "1,2,3", "--steps", "3"}, want: cli.ExitOK},
		{name: "same index", args: []string{"hybridize", "0", "0", "--seed", "1,2,3"}, want: cli.ExitUsage},
		{name: "index out of range", args: []string{"hybridize", "0", "9", "--seed", "1,2,3"}, want: cli.ExitUsage},
		{name: "non integer index", args: []string{"hybridize", "a", "1", "--seed", "1,2,3"}, want: cli.ExitUsage},
		{name: "missing seed", args: []string{"resolve"}, want: cli.ExitUsage},
		{name: "bad seed", args: []string{"resolve", "--seed", "1,x"}, want: cli.ExitUsage},
		{name: "negative seed", args: []string{"resolve", "--seed", "1,-2"}, want: cli.ExitUsage},
		{name: "both seeds", args: []string{"resolve", "--seed", "1", "--seed-file", seedFile}, want: cli.ExitUsage},
		{name: "recursion limit", args: []string{"recurse", "20000", "--seed", "1,2"}, want: cli.ExitUsage},
		{name: "recurse single tension", args: []string{"recurse", "1", "--seed", "1"}, want: cli.ExitUsage},
		{name: "bad schedule", args: []string{"generate", "--seed", "1,2", "--schedule", "explode"}, want: cli.ExitUsage},
		{name: "generator step fails", args: []string{"generate", "--seed", "1,2", "--schedule", "resolve", "--steps", "3"}, want: cli.ExitUsage},
		{name: "unknown format", args: []string{"resolve", "--seed", "1,2", "--format", "yaml"}, want: cli.ExitUsage},
		{name: "unknown flag", args: []string{"resolve", "--bogus"}, want: cli.ExitUsage},
		{name: "unknown command", args: []string{"explode"}, want: cli.ExitUsage},
		{name: "invalid config", args: []string{"resolve", "--seed", "1", "--config", badConfig}, want: cli.ExitUsage},
		{name: "lattice triad bad vector", args: []string{"lattice", "triad", "1,0", "0,1,0"}, want: cli.ExitUsage},
		{name: "version", args: []string{"version"}, want: cli.ExitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := execute(t, tt.args...)
			if code != tt.want {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.want, stderr)
			}
			if code != cli.ExitOK && !strings.Contains(stderr, "Error:") {
				t.Errorf("expected an error message on stderr, got %q", stderr)
			}
		})
	}
}

func TestRun_HybridizeText(t *testing.T) {
	code, stdout, _ := execute(t, "hybridize", "0", "1", "--seed", "1,2,3")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d", code)
	}

	for _, want := range []string{
		"hybridize(i=0, j=1)",
		"[1, 2, 3, 2.38196601125]",
		"8.38196601125",
		"✓ invariant holds",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_ResolveJSON(t *testing.T) {
	code, stdout, _ := execute(t, "resolve", "--seed", "1,2,3", "--format", "json")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d", code)
	}

	var got struct {
		Operation string `json:"operation"`
		State     struct {
			Tensions   []float64 `json:"tensions"`
			Synthesis  float64   `json:"synthesis"`
			Antithesis float64   `json:"antithesis"`
		} `json:"state"`
		InvariantHeld bool   `json:"invariant_held"`
		RunID         string `json:"run_id"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}

	if got.Operation != "resolve" || !got.InvariantHeld || got.RunID == "" {
		t.Errorf("unexpected result: %+v", got)
	}
	if len(got.State.Tensions) != 1 || got.State.Tensions[0] != 3 {
		t.Errorf("tensions = %v, want [3]", got.State.Tensions)
	}
	if got.State.Synthesis != 6 || got.State.Antithesis != 1.5 {
		t.Errorf("S = %v, A = %v, want 6 and 1.5", got.State.Synthesis, got.State.Antithesis)
	}
}

func countJSONDocuments(t *testing.T, r io.Reader) int {
	t.Helper()
	dec := json.NewDecoder(r)
	n := 0
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return n
		}
		if err != nil {
			t.Fatalf("invalid JSON document %d: %v", n, err)
		}
		n++
	}
}

func TestRun_GenerateJSON(t *testing.T) {
	code, stdout, _ := execute(t, "generate", "--seed", "1,2,3", "--steps", "3", "--format", "json")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d", code)
	}
	if n := countJSONDocuments(t, strings.NewReader(stdout)); n != 4 {
		t.Errorf("expected seed plus 3 steps, got %d documents", n)
	}
}

func TestRun_GenerateUsesConfigSchedule(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "generator:\n  max_steps: 2\n  schedule: [resolve]\n")

	code, stdout, stderr := execute(t, "generate", "--seed", "1,2,3,4", "--config", cfg, "--format", "json")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d (stderr: %s)", code, stderr)
	}
	if n := countJSONDocuments(t, strings.NewReader(stdout)); n != 3 {
		t.Errorf("expected seed plus 2 steps, got %d documents", n)
	}
}

func TestRun_Metrics(t *testing.T) {
	code, _, stderr := execute(t, "recurse", "3", "--seed", "1,2,3", "--metrics")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"mgd_engine_operations_total", "mgd_engine_recurse_depth"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("metrics dump missing %q:\n%s", want, stderr)
		}
	}
}

func TestRun_Lattice(t *testing.T) {
	code, stdout, _ := execute(t, "lattice", "cube", "--format", "json")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d", code)
	}
	var stats struct {
		ValidAnchors int     `json:"valid_anchors"`
		Ratio        float64 `json:"ratio_percentage"`
	}
	if err := json.Unmarshal([]byte(stdout), &stats); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if stats.ValidAnchors != 243 || stats.Ratio != 33.33 {
		t.Errorf("unexpected cube stats: %+v", stats)
	}

	code, stdout, _ = execute(t, "lattice", "triad", "1,0,0", "0,1,0")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "Interrogation × Négation") || !strings.Contains(stdout, "(1, 1, 2)") {
		t.Errorf("unexpected triad output:\n%s", stdout)
	}

	code, stdout, _ = execute(t, "lattice", "generate", "--iterations", "1")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "6 new") || !strings.Contains(stdout, "9") {
		t.Errorf("unexpected closure output:\n%s", stdout)
	}
}

func TestRun_ConfigValidate(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "engine:\n  max_depth: 50\n")

	code, stdout, _ := execute(t, "config", "validate", "--config", cfg, "--show")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "max_depth: 50") {
		t.Errorf("effective config missing override:\n%s", stdout)
	}

	t.Setenv("MGD_ENGINE_MAX_DEPTH", "0x")
	if code, _, _ := execute(t, "config", "validate", "--config", cfg); code != cli.ExitUsage {
		t.Errorf("exit code = %d, want %d", code, cli.ExitUsage)
	}
}

func TestRun_Version(t *testing.T) {
	_, stdout, _ := execute(t, "version")
	if !strings.Contains(stdout, "mgd "+Version) {
		t.Errorf("unexpected version output: %q", stdout)
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent writes and reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in output:\n%s", want, buf.String())
}

func TestGenerate_WatchReseeds(t *testing.T) {
	path := writeFile(t, "seed.yaml", "tensions: [1, 2, 3]\n")
	cfg := writeFile(t, "config.yaml", "seed:\n  debounce_interval: 10ms\n")

	var stdout, stderr syncBuffer
	a := &app{stdout: &stdout, stderr: &stderr}
	root := newRootCmd(a)
	root.SetArgs([]string{"generate", "--config", cfg, "--seed-file", path, "--watch", "--steps", "1"})
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	waitFor(t, &stdout, "[1, 2, 3]")

	// The configuration is reloaded with the next seed.
	if err := os.WriteFile(cfg, []byte("seed:\n  debounce_interval: 10ms\ngenerator:\n  schedule: [resolve]\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	// Keep rewriting until the watcher picks the change up.
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(stdout.String(), "[7, 8]") {
		if time.Now().After(deadline) {
			t.Fatalf("seed change was not picked up:\n%s", stdout.String())
		}
		if err := os.WriteFile(path, []byte("tensions: [7, 8]\n"), 0o644); err != nil {
			t.Fatalf("failed to rewrite seed: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	waitFor(t, &stdout, "[]")
	if got := config.GetConfig().Generator.Schedule; len(got) != 1 || got[0] != "resolve" {
		t.Errorf("expected the reloaded schedule to be published, got %v", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("generate --watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("generate --watch did not stop after cancellation")
	}
}

func TestRun_PublishesConfig(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "engine:\n  max_depth: 77\n")
	t.Cleanup(func() { config.SetConfig(nil) })

	if code, _, stderr := execute(t, "resolve", "--seed", "1,2", "--config", cfg); code != cli.ExitOK {
		t.Fatalf("exit code = %d (stderr: %s)", code, stderr)
	}
	got := config.GetConfig()
	if got == nil || got.Engine.MaxDepth != 77 {
		t.Errorf("expected the loaded configuration to be published, got %+v", got)
	}
}

func TestRun_ConfigValidateReportsFields(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "engine:\n  max_depth: -1\ntelemetry:\n  tracing:\n    sample_ratio: 2\n")

	code, _, stderr := execute(t, "config", "validate", "--config", cfg)
	if code != cli.ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, cli.ExitUsage)
	}
	for _, want := range []string{
		"config error in engine.max_depth: must be at least 1",
		"config error in telemetry.tracing.sample_ratio:",
		"2 invalid field(s)",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}
