package engine

import (
	"context"
	"time"
)

const (
	defaultStatsDays = 30
	maxStatsDays     = 365
)

// Statistics aggregates the recorded inference events over a rolling window.
// Read-only; no side effects.
func (e *Engine) Statistics(ctx context.Context, days int) StatisticsResult {
	if days <= 0 {
		days = defaultStatsDays
	}
	if days > maxStatsDays {
		days = maxStatsDays
	}
	out := StatisticsResult{PeriodDays: days}

	if e.deps.Events == nil {
		out.Error = "event store unavailable"
		return out
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	events, err := e.deps.Events.ListInferencesSince(ctx, since)
	if err != nil {
		e.log.Warn("statistics window query failed", "days", days, "error", err)
		out.Error = "statistics unavailable"
		return out
	}

	var confidenceSum float64
	for _, ev := range events {
		out.TotalInferences++
		if ev.Success {
			out.Succeeded++
			confidenceSum += ev.Confidence
			switch {
			case ev.Confidence >= 0.8:
				out.ConfidenceDistribution.High++
			case ev.Confidence >= 0.5:
				out.ConfidenceDistribution.Medium++
			default:
				out.ConfidenceDistribution.Low++
			}
			switch ev.PathType {
			case PathTypeDirect:
				out.DirectPaths++
			case PathTypeIndirect:
				out.IndirectPaths++
			}
			continue
		}
		out.Failed++
		switch ev.FailureKind {
		case FailureNotFound:
			out.NotFoundFailures++
		case FailureNoPath:
			out.NoPathFailures++
		case FailureInfrastructure:
			out.InfrastructureFailures++
		}
	}
	if out.TotalInferences > 0 {
		out.SuccessRate = float64(out.Succeeded) / float64(out.TotalInferences)
	}
	if out.Succeeded > 0 {
		out.AverageConfidence = confidenceSum / float64(out.Succeeded)
	}
	out.Success = true
	return out
}
