package config

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidate_DefaultConfig(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("expected default config to be valid, got: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(&Config{})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	// max_depth, logging level and logging format are all zero
	if len(validationErr.Errors) < 3 {
		t.Errorf("expected at least 3 errors, got %d: %v", len(validationErr.Errors), err)
	}
	if !strings.Contains(validationErr.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", validationErr.Error())
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "zero max depth",
			mutate:    func(c *Config) { c.Engine.MaxDepth = 0 },
			wantField: "engine.max_depth",
		},
		{
			name:      "negative tolerance",
			mutate:    func(c *Config) { c.Engine.Tolerance = -1 },
			wantField: "engine.tolerance",
		},
		{
			name:      "NaN tolerance",
			mutate:    func(c *Config) { c.Engine.Tolerance = math.NaN() },
			wantField: "engine.tolerance",
		},
		{
			name:      "negative max steps",
			mutate:    func(c *Config) { c.Generator.MaxSteps = -1 },
			wantField: "generator.max_steps",
		},
		{
			name:      "bad schedule entry",
			mutate:    func(c *Config) { c.Generator.Schedule = []string{"recurse", "hybridize:1"} },
			wantField: "generator.schedule[1]",
		},
		{
			name:      "watch without path",
			mutate:    func(c *Config) { c.Seed.Watch = true },
			wantField: "seed.path",
		},
		{
			name:      "negative debounce",
			mutate:    func(c *Config) { c.Seed.DebounceInterval = -1 },
			wantField: "seed.debounce_interval",
		},
		{
			name:      "unknown log level",
			mutate:    func(c *Config) { c.Telemetry.Logging.Level = "trace" },
			wantField: "telemetry.logging.level",
		},
		{
			name:      "unknown log format",
			mutate:    func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			wantField: "telemetry.logging.format",
		},
		{
			name:      "unsorted buckets",
			mutate:    func(c *Config) { c.Telemetry.Metrics.DepthBuckets = []float64{10, 1} },
			wantField: "telemetry.metrics.depth_buckets",
		},
		{
			name:      "sample ratio too large",
			mutate:    func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 },
			wantField: "telemetry.tracing.sample_ratio",
		},
		{
			name: "tracing without service name",
			mutate: func(c *Config) {
				c.Telemetry.Tracing.Enabled = true
				c.Telemetry.Tracing.ServiceName = ""
			},
			wantField: "telemetry.tracing.service_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(validationErr.Errors) != 1 {
				t.Fatalf("expected exactly one error, got %v", validationErr.Errors)
			}
			if got := validationErr.Errors[0].Field; got != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, got)
			}
		})
	}
}

func TestEngineConfig_ToEngine(t *testing.T) {
	cfg := EngineConfig{MaxDepth: 7, Tolerance: 1e-3}

	converted := cfg.ToEngine()
	if converted.MaxDepth != 7 || converted.Tolerance != 1e-3 {
		t.Errorf("unexpected engine config: %+v", converted)
	}
	if err := converted.Validate(); err != nil {
		t.Errorf("converted config should be valid: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Engine.MaxDepth != DefaultEngineMaxDepth {
		t.Errorf("expected max depth %d, got %d", DefaultEngineMaxDepth, cfg.Engine.MaxDepth)
	}
	if cfg.Telemetry.Logging.Level != DefaultLogLevel {
		t.Errorf("expected level %q, got %q", DefaultLogLevel, cfg.Telemetry.Logging.Level)
	}
	if cfg.Generator.MaxSteps != 0 {
		t.Errorf("max steps zero means unbounded and must be kept, got %d", cfg.Generator.MaxSteps)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("config should be valid after defaults: %v", err)
	}
}
