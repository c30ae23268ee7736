package tracing

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// createSampler maps a sample ratio to a sampler. Root spans are sampled by
// ratio; child spans follow their parent's decision.
//
//	1.0        AlwaysSample
//	0.0        NeverSample
//	otherwise  ParentBased(TraceIDRatioBased(ratio))
func createSampler(ratio float64) (sdktrace.Sampler, error) {
	if ratio < 0 || ratio > 1 {
		return nil, fmt.Errorf("sample ratio must be between 0.0 and 1.0, got %f", ratio)
	}

	switch ratio {
	case 1:
		return sdktrace.AlwaysSample(), nil
	case 0:
		return sdktrace.NeverSample(), nil
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio)), nil
	}
}
