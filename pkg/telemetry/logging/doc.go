// Package logging provides structured logging for mgd.
//
// The package wraps log/slog with JSON, text and console formats and adds
// context-aware helpers: run IDs, operation names, generator steps and the
// active OpenTelemetry span are attached to records automatically by the
// *Context methods.
//
//	logger, err := logging.New(logging.Config{Level: "debug", Format: "json"})
//	ctx = logging.WithRunID(ctx, runID)
//	logger.DebugContext(ctx, "recurse", "depth", 3)
//
// Logs go to stderr by default so that command output on stdout stays
// machine readable.
package logging
