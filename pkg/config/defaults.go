package config

import "time"

// Default values for configuration fields.
const (
	// Engine defaults
	DefaultEngineMaxDepth  = 10000
	DefaultEngineTolerance = 1e-9

	// Generator defaults
	DefaultGeneratorMaxSteps = 100

	// Seed defaults
	DefaultSeedWatch            = false
	DefaultSeedDebounceInterval = 100 * time.Millisecond

	// Logging defaults
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "text"
	DefaultLogAddSource = false

	// Metrics defaults
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "mgd"
	DefaultMetricsSubsystem = "engine"

	// Tracing defaults
	DefaultTracingEnabled     = false
	DefaultTracingServiceName = "mgd"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingPrettyPrint = false
)

// DefaultGeneratorSchedule hybridizes the closest pair once per step.
func DefaultGeneratorSchedule() []string {
	return []string{"recurse"}
}

// DefaultDepthBuckets covers single steps up to the default recursion bound.
func DefaultDepthBuckets() []float64 {
	return []float64{1, 2, 5, 10, 50, 100, 500, 1000, 5000, 10000}
}

// DefaultConfig returns a configuration with every field set to its default.
// LoadConfig decodes files on top of it, so boolean defaults of true survive
// files that do not mention them.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxDepth:  DefaultEngineMaxDepth,
			Tolerance: DefaultEngineTolerance,
		},
		Generator: GeneratorConfig{
			MaxSteps: DefaultGeneratorMaxSteps,
			Schedule: DefaultGeneratorSchedule(),
		},
		Seed: SeedConfig{
			Watch:            DefaultSeedWatch,
			DebounceInterval: DefaultSeedDebounceInterval,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:     DefaultLogLevel,
				Format:    DefaultLogFormat,
				AddSource: DefaultLogAddSource,
			},
			Metrics: MetricsConfig{
				Enabled:      DefaultMetricsEnabled,
				Namespace:    DefaultMetricsNamespace,
				Subsystem:    DefaultMetricsSubsystem,
				DepthBuckets: DefaultDepthBuckets(),
			},
			Tracing: TracingConfig{
				Enabled:     DefaultTracingEnabled,
				ServiceName: DefaultTracingServiceName,
				SampleRatio: DefaultTracingSampleRatio,
				PrettyPrint: DefaultTracingPrettyPrint,
			},
		},
	}
}

// ApplyDefaults fills zero-valued fields that have a non-zero default.
// Zero is not a meaningful value for these fields, so an explicit zero in a
// file is treated as unset. MaxSteps and Tolerance are left alone: zero steps
// means unbounded and zero tolerance means an exact invariant check. Both keep
// their defaults through DefaultConfig when a file omits them.
func ApplyDefaults(cfg *Config) {
	// Engine defaults
	if cfg.Engine.MaxDepth == 0 {
		cfg.Engine.MaxDepth = DefaultEngineMaxDepth
	}

	// Generator defaults
	if len(cfg.Generator.Schedule) == 0 {
		cfg.Generator.Schedule = DefaultGeneratorSchedule()
	}

	// Seed defaults
	if cfg.Seed.DebounceInterval == 0 {
		cfg.Seed.DebounceInterval = DefaultSeedDebounceInterval
	}

	// Logging defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}

	// Metrics defaults
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.DepthBuckets) == 0 {
		cfg.Telemetry.Metrics.DepthBuckets = DefaultDepthBuckets()
	}

	// Tracing defaults
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
}
