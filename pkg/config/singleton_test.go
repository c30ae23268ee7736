package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func resetGlobal(t *testing.T) {
	t.Helper()
	configMutex.Lock()
	globalConfig = nil
	configMutex.Unlock()
	initOnce = sync.Once{}
	t.Cleanup(func() {
		SetConfig(nil)
		initOnce = sync.Once{}
	})
}

func writeSingletonConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestInitialize(t *testing.T) {
	resetGlobal(t)
	path := writeSingletonConfig(t, "config.yaml", "engine:\n  max_depth: 42\n")

	if err := Initialize(path); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config after initialization")
	}
	if cfg.Engine.MaxDepth != 42 {
		t.Errorf("expected max depth 42, got %d", cfg.Engine.MaxDepth)
	}
}

func TestInitialize_MultipleCallsIgnored(t *testing.T) {
	resetGlobal(t)
	first := writeSingletonConfig(t, "first.yaml", "engine:\n  max_depth: 10\n")
	second := writeSingletonConfig(t, "second.yaml", "engine:\n  max_depth: 20\n")

	if err := Initialize(first); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}
	Initialize(second)

	if got := GetConfig().Engine.MaxDepth; got != 10 {
		t.Errorf("second Initialize call should be ignored, got max depth %d", got)
	}
}

func TestInitialize_InvalidConfig(t *testing.T) {
	resetGlobal(t)
	path := writeSingletonConfig(t, "config.yaml", "engine:\n  max_depth: -1\n")

	if err := Initialize(path); err == nil {
		t.Fatal("expected error for invalid config")
	}
	if GetConfig() != nil {
		t.Error("invalid config must not be stored")
	}
}

func TestSetConfig(t *testing.T) {
	resetGlobal(t)

	cfg := DefaultConfig()
	cfg.Generator.MaxSteps = 7
	SetConfig(cfg)

	if got := MustGetConfig(); got != cfg {
		t.Errorf("MustGetConfig() returned %p, want %p", got, cfg)
	}
}

func TestReloadConfig(t *testing.T) {
	resetGlobal(t)
	path := writeSingletonConfig(t, "config.yaml", "generator:\n  schedule: [recurse]\n")
	SetConfig(DefaultConfig())

	if err := os.WriteFile(path, []byte("generator:\n  schedule: [resolve]\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	if err := ReloadConfig(path); err != nil {
		t.Fatalf("ReloadConfig() error = %v", err)
	}
	if got := GetConfig().Generator.Schedule; len(got) != 1 || got[0] != "resolve" {
		t.Errorf("expected reloaded schedule [resolve], got %v", got)
	}

	// A broken file keeps the previous configuration.
	before := GetConfig()
	if err := os.WriteFile(path, []byte("engine: ["), 0o644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	if err := ReloadConfig(path); err == nil {
		t.Fatal("expected error for unparsable config")
	}
	if GetConfig() != before {
		t.Error("failed reload replaced the stored configuration")
	}
}

func TestMustGetConfig_PanicsWhenUnset(t *testing.T) {
	resetGlobal(t)

	defer func() {
		if recover() == nil {
			t.Error("expected panic before initialization")
		}
	}()
	MustGetConfig()
}
