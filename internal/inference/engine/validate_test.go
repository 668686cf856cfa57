package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/modbridge/modbridge-backend/internal/domain"
)

func TestValidatePatternReportsEveryMissingField(t *testing.T) {
	e := newTestEngine(Deps{})
	res := e.ValidatePattern(context.Background(), PatternInput{})

	if res.IsValid {
		t.Fatal("empty pattern must be invalid")
	}
	if len(res.ValidationErrors) != 5 {
		t.Fatalf("got %d errors, want one per required field: %v", len(res.ValidationErrors), res.ValidationErrors)
	}
	for _, field := range []string{"source_concept", "target_concept", "transformation_type", "platform", "minecraft_version"} {
		found := false
		for _, msg := range res.ValidationErrors {
			if strings.Contains(msg, field) {
				found = true
			}
		}
		if !found {
			t.Errorf("no validation error names %q: %v", field, res.ValidationErrors)
		}
	}
}

func TestValidatePatternConfidenceOutOfRange(t *testing.T) {
	e := newTestEngine(Deps{})
	p := validPattern()
	p.Confidence = 1.5
	res := e.ValidatePattern(context.Background(), p)
	if res.IsValid || len(res.ValidationErrors) != 1 {
		t.Fatalf("out-of-range confidence must be a single error, got %+v", res)
	}

	p.Confidence = -0.1
	res = e.ValidatePattern(context.Background(), p)
	if res.IsValid {
		t.Fatal("negative confidence must be invalid")
	}
}

func TestValidatePatternBlendsHistory(t *testing.T) {
	patterns := &fakePatternStore{rows: map[string][]*domain.ConversionPattern{
		"block_mapping": {
			{SuccessRate: 0.9},
			{SuccessRate: 0.7},
		},
	}}
	e := newTestEngine(Deps{Patterns: patterns})

	res := e.ValidatePattern(context.Background(), validPattern())
	if !res.IsValid {
		t.Fatalf("valid pattern rejected: %v", res.ValidationErrors)
	}
	if res.HistoricalSamples != 2 {
		t.Fatalf("historical_samples = %d, want 2", res.HistoricalSamples)
	}
	want := 0.6*0.8 + 0.4*0.8 // avg success rate (0.9+0.7)/2 = 0.8
	if diff := res.ConfidenceScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("confidence_score = %v, want %v", res.ConfidenceScore, want)
	}
}

func TestValidatePatternDegradedHistoryKeepsRawConfidence(t *testing.T) {
	patterns := &fakePatternStore{err: errors.New("connection reset")}
	e := newTestEngine(Deps{Patterns: patterns})

	res := e.ValidatePattern(context.Background(), validPattern())
	if !res.IsValid {
		t.Fatalf("store degradation must not invalidate the pattern: %v", res.ValidationErrors)
	}
	if res.ConfidenceScore != 0.8 || res.HistoricalSamples != 0 {
		t.Fatalf("degraded store must leave raw confidence: %+v", res)
	}
}

func TestValidatePatternModelAveraging(t *testing.T) {
	e := newTestEngine(Deps{Model: &fakeModel{score: 0.6}})
	res := e.ValidatePattern(context.Background(), validPattern())
	if !res.ModelAdjusted {
		t.Fatal("model prediction should mark the result adjusted")
	}
	want := (0.8 + 0.6) / 2
	if diff := res.ConfidenceScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("confidence_score = %v, want %v", res.ConfidenceScore, want)
	}

	// A broken model must not gate validity or move the score.
	e = newTestEngine(Deps{Model: &fakeModel{err: errors.New("timeout")}})
	res = e.ValidatePattern(context.Background(), validPattern())
	if !res.IsValid || res.ModelAdjusted || res.ConfidenceScore != 0.8 {
		t.Fatalf("model failure must be ignored: %+v", res)
	}
}

func validPattern() PatternInput {
	return PatternInput{
		SourceConcept:      "java_block",
		TargetConcept:      "bedrock_block",
		TransformationType: "block_mapping",
		Confidence:         0.8,
		Platform:           PlatformBedrock,
		MinecraftVersion:   "1.19.3",
	}
}
