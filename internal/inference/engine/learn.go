package engine

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/modbridge/modbridge-backend/internal/domain"
)

// LearnFromConversion folds the outcome of an applied conversion back into
// the graph: traversed edges gain usage and their success rate moves toward
// the observed score by an exponentially-weighted update, so one bad outcome
// never erases accumulated evidence. Safe to call when the traversed path no
// longer exists: that is a logged no-op, not a failure.
func (e *Engine) LearnFromConversion(ctx context.Context, javaConcept, bedrockConcept string, outcome ConversionOutcome, metrics SuccessMetrics) LearningResult {
	out := LearningResult{LearningEventID: uuid.New().String()}

	javaConcept = strings.TrimSpace(javaConcept)
	bedrockConcept = strings.TrimSpace(bedrockConcept)
	if javaConcept == "" || bedrockConcept == "" {
		out.Error = "both java and bedrock concept names are required"
		return out
	}
	if e.deps.Reinforce == nil {
		out.Error = "graph store unavailable, feedback not applied"
		return out
	}

	out.ObservedScore = observedScore(outcome, metrics)

	if len(outcome.PathSteps) == 0 {
		e.log.Info("learning feedback without path steps, nothing to reinforce",
			"java_concept", javaConcept, "bedrock_concept", bedrockConcept)
		out.Success = true
		e.recordLearning(ctx, &out, javaConcept, bedrockConcept, metrics)
		return out
	}

	updated, err := e.deps.Reinforce.ReinforceEdges(ctx, outcome.PathSteps, ReinforcementOutcome{
		Observed: out.ObservedScore,
		Alpha:    e.cfg.LearningAlpha,
		Success:  outcome.Success,
	})
	if err != nil {
		e.log.Warn("edge reinforcement failed", "java_concept", javaConcept, "error", err)
		out.Error = "graph reinforcement failed, feedback not applied"
		e.recordLearning(ctx, &out, javaConcept, bedrockConcept, metrics)
		return out
	}

	out.EdgesUpdated = updated
	out.Applied = updated > 0
	out.Success = true
	if !out.Applied {
		e.log.Info("traversed path no longer present in graph, feedback skipped",
			"java_concept", javaConcept, "bedrock_concept", bedrockConcept)
	}
	e.recordLearning(ctx, &out, javaConcept, bedrockConcept, metrics)
	return out
}

// observedScore condenses the success metrics into one [0,1] reinforcement
// signal: accuracy dominates, the community rating and reported confidence
// temper it, and a failed conversion pulls the whole signal down hard.
func observedScore(outcome ConversionOutcome, metrics SuccessMetrics) float64 {
	score := 0.45*clamp01(metrics.Accuracy) +
		0.35*clamp01(metrics.UserRating/5) +
		0.2*clamp01(metrics.Confidence)
	if !outcome.Success {
		score *= 0.3
	}
	return clamp01(score)
}

func (e *Engine) recordLearning(ctx context.Context, res *LearningResult, javaConcept, bedrockConcept string, metrics SuccessMetrics) {
	if e.deps.Events == nil {
		return
	}
	raw, _ := json.Marshal(metrics)
	ev := &domain.LearningEvent{
		ID:             uuid.MustParse(res.LearningEventID),
		JavaConcept:    javaConcept,
		BedrockConcept: bedrockConcept,
		EdgesUpdated:   res.EdgesUpdated,
		ObservedScore:  res.ObservedScore,
		Applied:        res.Applied,
		Metrics:        raw,
	}
	if err := e.deps.Events.RecordLearning(ctx, ev); err != nil {
		e.log.Warn("learning event not recorded", "java_concept", javaConcept, "error", err)
	}
}
