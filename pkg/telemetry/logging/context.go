package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for run identifiers.
	RunIDKey contextKey = "run_id"

	// OperationKey is the context key for the engine operation in progress.
	OperationKey contextKey = "op"

	// StepKey is the context key for generator step numbers.
	StepKey contextKey = "step"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithOperation adds an operation name to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, OperationKey, op)
}

// GetOperation retrieves the operation name from the context.
func GetOperation(ctx context.Context) string {
	if op, ok := ctx.Value(OperationKey).(string); ok {
		return op
	}
	return ""
}

// WithStep adds a generator step number to the context.
func WithStep(ctx context.Context, step int) context.Context {
	return context.WithValue(ctx, StepKey, step)
}

// GetStep retrieves the generator step number from the context.
func GetStep(ctx context.Context) (int, bool) {
	step, ok := ctx.Value(StepKey).(int)
	return step, ok
}

// extractContextFields returns key-value pairs for the fields found in ctx,
// including trace and span IDs of a recording span.
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}

	if op := GetOperation(ctx); op != "" {
		fields = append(fields, "op", op)
	}

	if step, ok := GetStep(ctx); ok {
		fields = append(fields, "step", step)
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields, "trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
	}

	return fields
}
