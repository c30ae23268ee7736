// Package config provides configuration management for mgd.
//
// Configuration is read from an optional YAML file and may be overridden by
// environment variables. Every field has a default, so mgd runs without any
// file at all.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("mgd.yaml")                 // file only
//	cfg, err := config.LoadConfigWithEnvOverrides("mgd.yaml") // file + env
//	cfg, err := config.LoadConfigWithEnvOverrides("")         // defaults + env
//
// Unknown keys in the file are rejected.
//
// # Environment Variable Overrides
//
// Variables follow the naming convention MGD_SECTION_FIELD:
//
//   - MGD_ENGINE_MAX_DEPTH overrides engine.max_depth
//   - MGD_GENERATOR_SCHEDULE overrides generator.schedule (comma separated)
//   - MGD_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
// Later sources override earlier ones:
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example
//
//	engine:
//	  max_depth: 10000
//	  tolerance: 1e-9
//	generator:
//	  max_steps: 100
//	  schedule: ["recurse", "resolve"]
//	seed:
//	  path: ./seed.yaml
//	  watch: true
//	  debounce_interval: 100ms
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
//	  metrics:
//	    enabled: true
//	  tracing:
//	    enabled: false
//
// # Singleton
//
// Initialize, GetConfig, SetConfig and ReloadConfig manage a process-wide
// instance. mgd publishes each loaded configuration with SetConfig and
// refreshes it with ReloadConfig in watch mode. Library code should take a
// *Config explicitly instead.
package config
