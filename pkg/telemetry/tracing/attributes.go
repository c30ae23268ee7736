package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys recorded on engine spans.
const (
	AttrRunID         = "mgd.run_id"
	AttrOperation     = "mgd.op"
	AttrDepth         = "mgd.depth"
	AttrIndexI        = "mgd.i"
	AttrIndexJ        = "mgd.j"
	AttrTensions      = "mgd.tensions"
	AttrSynthesis     = "mgd.synthesis"
	AttrAntithesis    = "mgd.antithesis"
	AttrInvariantHeld = "mgd.invariant_held"
	AttrStep          = "mgd.step"
)

// SetStateAttributes records the shape of a state on span.
func SetStateAttributes(span trace.Span, tensions int, synthesis, antithesis float64) {
	span.SetAttributes(
		attribute.Int(AttrTensions, tensions),
		attribute.Float64(AttrSynthesis, synthesis),
		attribute.Float64(AttrAntithesis, antithesis),
	)
}

// SetInvariantAttribute records an invariant check result on span.
func SetInvariantAttribute(span trace.Span, held bool) {
	span.SetAttributes(attribute.Bool(AttrInvariantHeld, held))
}
