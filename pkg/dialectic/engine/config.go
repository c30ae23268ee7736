package engine

import (
	"fmt"
	"math"
)

const (
	// DefaultMaxDepth bounds a single recurse call.
	DefaultMaxDepth = 10000

	// DefaultTolerance is the slack allowed by the invariant check.
	DefaultTolerance = 1e-9
)

// EngineConfig contains configuration for the dialectic engine.
type EngineConfig struct {
	// MaxDepth is the largest depth accepted by Recurse.
	// Default: 10000.
	MaxDepth int

	// Tolerance is the floating point slack used by CheckInvariant.
	// Default: 1e-9.
	Tolerance float64
}

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		MaxDepth:  DefaultMaxDepth,
		Tolerance: DefaultTolerance,
	}
}

// Validate validates the engine configuration.
func (c *EngineConfig) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth must be positive", ErrInvalidConfig)
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be a finite non-negative number", ErrInvalidConfig)
	}
	return nil
}

// WithMaxDepth sets the maximum recursion depth.
func (c *EngineConfig) WithMaxDepth(depth int) *EngineConfig {
	c.MaxDepth = depth
	return c
}

// WithTolerance sets the invariant tolerance.
func (c *EngineConfig) WithTolerance(tolerance float64) *EngineConfig {
	c.Tolerance = tolerance
	return c
}
