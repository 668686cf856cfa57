package engine

import (
	"context"
	"errors"
	"testing"
)

func goodMetrics() SuccessMetrics {
	return SuccessMetrics{Confidence: 0.8, Accuracy: 0.9, UserRating: 4.5}
}

func tracedSteps() []PathStep {
	return []PathStep{
		{SourceConcept: "java_block", TargetConcept: "bedrock_block", RelationshipType: "CONVERTS_TO"},
	}
}

func TestLearnFromConversionReinforces(t *testing.T) {
	reinforce := &fakeReinforcer{updated: 1}
	events := &fakeEventStore{}
	e := newTestEngine(Deps{Reinforce: reinforce, Events: events})

	res := e.LearnFromConversion(context.Background(), "java_block", "bedrock_block",
		ConversionOutcome{PathSteps: tracedSteps(), PathType: PathTypeDirect, Success: true},
		goodMetrics())

	if !res.Success || !res.Applied || res.EdgesUpdated != 1 {
		t.Fatalf("result = %+v", res)
	}
	if res.LearningEventID == "" {
		t.Fatal("learning_event_id must always be assigned")
	}
	want := 0.45*0.9 + 0.35*(4.5/5) + 0.2*0.8
	if diff := res.ObservedScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("observed_score = %v, want %v", res.ObservedScore, want)
	}
	if reinforce.gotOutcome.Alpha != DefaultConfig().LearningAlpha {
		t.Fatalf("alpha = %v", reinforce.gotOutcome.Alpha)
	}
	if len(events.learnings) != 1 || events.learnings[0].EdgesUpdated != 1 {
		t.Fatalf("learning event not recorded: %+v", events.learnings)
	}
}

func TestLearnFromConversionFailureDampensScore(t *testing.T) {
	reinforce := &fakeReinforcer{updated: 1}
	e := newTestEngine(Deps{Reinforce: reinforce})

	ok := e.LearnFromConversion(context.Background(), "a", "b",
		ConversionOutcome{PathSteps: tracedSteps(), Success: true}, goodMetrics())
	bad := e.LearnFromConversion(context.Background(), "a", "b",
		ConversionOutcome{PathSteps: tracedSteps(), Success: false}, goodMetrics())

	if bad.ObservedScore >= ok.ObservedScore {
		t.Fatalf("failed conversion must score lower: %v vs %v", bad.ObservedScore, ok.ObservedScore)
	}
	want := ok.ObservedScore * 0.3
	if diff := bad.ObservedScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("dampened score = %v, want %v", bad.ObservedScore, want)
	}
}

func TestLearnFromConversionMissingPathIsNoOp(t *testing.T) {
	reinforce := &fakeReinforcer{updated: 1}
	e := newTestEngine(Deps{Reinforce: reinforce})

	// No traversed steps supplied: nothing to reinforce, still a success.
	res := e.LearnFromConversion(context.Background(), "a", "b",
		ConversionOutcome{Success: true}, goodMetrics())
	if !res.Success || res.Applied || res.EdgesUpdated != 0 {
		t.Fatalf("empty path must be a successful no-op: %+v", res)
	}
	if reinforce.gotSteps != nil {
		t.Fatal("reinforcer must not be called without steps")
	}

	// Steps supplied but the graph no longer has those edges.
	reinforce = &fakeReinforcer{updated: 0}
	e = newTestEngine(Deps{Reinforce: reinforce})
	res = e.LearnFromConversion(context.Background(), "a", "b",
		ConversionOutcome{PathSteps: tracedSteps(), Success: true}, goodMetrics())
	if !res.Success || res.Applied {
		t.Fatalf("vanished path must be a successful no-op: %+v", res)
	}
}

func TestLearnFromConversionFailures(t *testing.T) {
	e := newTestEngine(Deps{Reinforce: &fakeReinforcer{}})
	res := e.LearnFromConversion(context.Background(), "", "bedrock_block",
		ConversionOutcome{}, goodMetrics())
	if res.Success || res.Error == "" {
		t.Fatalf("missing concept name must fail: %+v", res)
	}

	e = newTestEngine(Deps{})
	res = e.LearnFromConversion(context.Background(), "a", "b",
		ConversionOutcome{PathSteps: tracedSteps()}, goodMetrics())
	if res.Success {
		t.Fatal("nil reinforcer must produce a structured failure")
	}

	events := &fakeEventStore{}
	e = newTestEngine(Deps{Reinforce: &fakeReinforcer{err: errors.New("neo4j down")}, Events: events})
	res = e.LearnFromConversion(context.Background(), "a", "b",
		ConversionOutcome{PathSteps: tracedSteps(), Success: true}, goodMetrics())
	if res.Success {
		t.Fatal("reinforcement error must fail the result")
	}
	// Failed reinforcement is still recorded for audit.
	if len(events.learnings) != 1 || events.learnings[0].Applied {
		t.Fatalf("failed learning not recorded correctly: %+v", events.learnings)
	}
}
