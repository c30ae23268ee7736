package config

import "time"

// Config is the root configuration structure for mgd.
// It contains the engine bounds, the generator schedule, the seed source and
// telemetry settings.
type Config struct {
	// Engine contains the recursion bound and invariant tolerance.
	Engine EngineConfig `yaml:"engine" envPrefix:"ENGINE_"`

	// Generator contains configuration for lazy state generation.
	Generator GeneratorConfig `yaml:"generator" envPrefix:"GENERATOR_"`

	// Seed contains configuration for the seed file and its watcher.
	Seed SeedConfig `yaml:"seed" envPrefix:"SEED_"`

	// Telemetry contains configuration for logging, metrics and tracing.
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`
}

// EngineConfig contains configuration for the dialectic engine.
type EngineConfig struct {
	// MaxDepth is the largest depth a single recurse call accepts.
	// Deeper requests fail with a recursion limit error.
	// Default: 10000
	MaxDepth int `yaml:"max_depth" env:"MAX_DEPTH"`

	// Tolerance is the floating point slack allowed by the invariant check.
	// Zero requires an exact check.
	// Default: 1e-9
	Tolerance float64 `yaml:"tolerance" env:"TOLERANCE"`
}

// GeneratorConfig contains configuration for the state generator.
type GeneratorConfig struct {
	// MaxSteps bounds the number of transitions after the seed.
	// Zero means the sequence is unbounded and the caller decides when to stop.
	// Default: 100
	MaxSteps int `yaml:"max_steps" env:"MAX_STEPS"`

	// Schedule is the cyclic list of steps applied by the generator.
	// Each entry is "recurse", "recurse:<depth>", "resolve" or "hybridize:<i>:<j>".
	// Default: ["recurse"]
	Schedule []string `yaml:"schedule" env:"SCHEDULE" envSeparator:","`
}

// SeedConfig contains configuration for seed files.
type SeedConfig struct {
	// Path is the seed file to load when no seed is given on the command line.
	// Optional.
	Path string `yaml:"path" env:"PATH"`

	// Watch re-seeds the generator whenever the seed file changes.
	// Default: false
	Watch bool `yaml:"watch" env:"WATCH"`

	// DebounceInterval is the quiet period after a file change before the
	// seed is reloaded.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval" env:"DEBOUNCE_INTERVAL"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOGGING_"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing" envPrefix:"TRACING_"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level" env:"LEVEL"`

	// Format is the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format" env:"FORMAT"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source" env:"ADD_SOURCE"`
}

// MetricsConfig contains configuration for Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether engine operations are counted.
	// Default: true
	Enabled bool `yaml:"enabled" env:"ENABLED"`

	// Namespace is the metric name prefix.
	// Default: "mgd"
	Namespace string `yaml:"namespace" env:"NAMESPACE"`

	// Subsystem is the second metric name component.
	// Default: "engine"
	Subsystem string `yaml:"subsystem" env:"SUBSYSTEM"`

	// DepthBuckets are the histogram buckets for recurse depths.
	// Default: [1, 2, 5, 10, 50, 100, 500, 1000, 5000, 10000]
	DepthBuckets []float64 `yaml:"depth_buckets" env:"DEPTH_BUCKETS" envSeparator:","`
}

// TracingConfig contains configuration for OpenTelemetry tracing.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled" env:"ENABLED"`

	// ServiceName is the service.name resource attribute.
	// Default: "mgd"
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// SampleRatio is the fraction of root spans sampled (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio" env:"SAMPLE_RATIO"`

	// PrettyPrint indents exported spans.
	// Default: false
	PrettyPrint bool `yaml:"pretty_print" env:"PRETTY_PRINT"`
}
