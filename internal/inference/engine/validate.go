package engine

import (
	"context"
	"fmt"
	"strings"
)

// ValidatePattern checks a candidate conversion pattern for structural
// well-formedness and, when history or an ML model is available, refines the
// confidence score. Validation problems are reported in ValidationErrors,
// never raised.
func (e *Engine) ValidatePattern(ctx context.Context, p PatternInput) ValidationResult {
	out := ValidationResult{ValidationErrors: []string{}}

	required := []struct {
		name  string
		value string
	}{
		{"source_concept", p.SourceConcept},
		{"target_concept", p.TargetConcept},
		{"transformation_type", p.TransformationType},
		{"platform", p.Platform},
		{"minecraft_version", p.MinecraftVersion},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			out.ValidationErrors = append(out.ValidationErrors, fmt.Sprintf("missing required field: %s", f.name))
		}
	}
	// Out of range is an error, not a silent clamp.
	if p.Confidence < 0 || p.Confidence > 1 {
		out.ValidationErrors = append(out.ValidationErrors, fmt.Sprintf("confidence %.3f outside [0,1]", p.Confidence))
	}
	if len(out.ValidationErrors) > 0 {
		return out
	}
	out.IsValid = true
	out.ConfidenceScore = p.Confidence

	// Blend the observed success rates of same-type historical patterns as a
	// secondary signal; a degraded pattern store leaves the raw confidence.
	if e.deps.Patterns != nil {
		history, err := e.deps.Patterns.ListByTransformationType(ctx, p.TransformationType)
		if err != nil {
			e.log.Warn("pattern history lookup degraded", "transformation_type", p.TransformationType, "error", err)
		} else if len(history) > 0 {
			var sum float64
			for _, h := range history {
				sum += h.SuccessRate
			}
			avg := sum / float64(len(history))
			out.HistoricalSamples = len(history)
			out.ConfidenceScore = clamp01(0.6*p.Confidence + 0.4*avg)
		}
	}

	// Optional ML cross-check. Absence or failure never gates validity.
	if e.deps.Model != nil {
		predicted, err := e.deps.Model.PredictConfidence(ctx, p)
		if err != nil {
			e.log.Warn("confidence model unavailable", "error", err)
		} else if predicted >= 0 && predicted <= 1 {
			out.ConfidenceScore = clamp01((out.ConfidenceScore + predicted) / 2)
			out.ModelAdjusted = true
		}
	}

	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
