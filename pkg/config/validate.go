package config

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"dialectic-hq/mgd/pkg/dialectic/engine"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "engine.max_depth").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any rule fails. All errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateEngine(&cfg.Engine)...)
	errs = append(errs, validateGenerator(&cfg.Generator)...)
	errs = append(errs, validateSeed(&cfg.Seed)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// ToEngine converts the engine section into the engine package's
// configuration type.
func (c EngineConfig) ToEngine() *engine.EngineConfig {
	return engine.DefaultEngineConfig().
		WithMaxDepth(c.MaxDepth).
		WithTolerance(c.Tolerance)
}

func validateEngine(cfg *EngineConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxDepth < 1 {
		errs = append(errs, FieldError{
			Field:   "engine.max_depth",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.MaxDepth),
		})
	}

	if math.IsNaN(cfg.Tolerance) || math.IsInf(cfg.Tolerance, 0) || cfg.Tolerance < 0 {
		errs = append(errs, FieldError{
			Field:   "engine.tolerance",
			Message: fmt.Sprintf("must be a finite non-negative number, got %v", cfg.Tolerance),
		})
	}

	return errs
}

func validateGenerator(cfg *GeneratorConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxSteps < 0 {
		errs = append(errs, FieldError{
			Field:   "generator.max_steps",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.MaxSteps),
		})
	}

	for i, text := range cfg.Schedule {
		if _, err := engine.ParseStep(text); err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("generator.schedule[%d]", i),
				Message: err.Error(),
			})
		}
	}

	return errs
}

func validateSeed(cfg *SeedConfig) []FieldError {
	var errs []FieldError

	if cfg.DebounceInterval < 0 {
		errs = append(errs, FieldError{
			Field:   "seed.debounce_interval",
			Message: fmt.Sprintf("must be non-negative, got %s", cfg.DebounceInterval),
		})
	}

	if cfg.Watch && cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "seed.path",
			Message: "is required when seed.watch is enabled",
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(cfg.Logging.Level)) {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLevels, cfg.Logging.Level),
		})
	}

	validFormats := []string{"json", "text", "console"}
	if !slices.Contains(validFormats, strings.ToLower(cfg.Logging.Format)) {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be one of %v, got %q", validFormats, cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Namespace == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.namespace",
				Message: "is required when metrics are enabled",
			})
		}
		if !slices.IsSorted(cfg.Metrics.DepthBuckets) {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.depth_buckets",
				Message: "must be in increasing order",
			})
		}
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: fmt.Sprintf("must be between 0.0 and 1.0, got %v", cfg.Tracing.SampleRatio),
		})
	}

	if cfg.Tracing.Enabled && cfg.Tracing.ServiceName == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.service_name",
			Message: "is required when tracing is enabled",
		})
	}

	return errs
}
