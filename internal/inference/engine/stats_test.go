package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modbridge/modbridge-backend/internal/domain"
)

func seedInferenceEvents(now time.Time) *fakeEventStore {
	events := &fakeEventStore{}
	rows := []*domain.InferenceEvent{
		{Success: true, PathType: PathTypeDirect, Confidence: 0.9, CreatedAt: now},
		{Success: true, PathType: PathTypeDirect, Confidence: 0.85, CreatedAt: now},
		{Success: true, PathType: PathTypeIndirect, Confidence: 0.6, CreatedAt: now},
		{Success: true, PathType: PathTypeIndirect, Confidence: 0.45, CreatedAt: now},
		{Success: false, FailureKind: FailureNotFound, CreatedAt: now},
		{Success: false, FailureKind: FailureNoPath, CreatedAt: now},
		{Success: false, FailureKind: FailureInfrastructure, CreatedAt: now},
		// Outside any reasonable window, must be excluded by the store query.
		{Success: true, PathType: PathTypeDirect, Confidence: 0.99, CreatedAt: now.AddDate(-2, 0, 0)},
	}
	events.inferences = rows
	return events
}

func TestStatisticsAggregation(t *testing.T) {
	events := seedInferenceEvents(time.Now().UTC())
	e := newTestEngine(Deps{Events: events})

	res := e.Statistics(context.Background(), 30)
	if !res.Success {
		t.Fatalf("statistics failed: %q", res.Error)
	}
	if res.PeriodDays != 30 {
		t.Fatalf("period_days = %d", res.PeriodDays)
	}
	if res.TotalInferences != 7 || res.Succeeded != 4 || res.Failed != 3 {
		t.Fatalf("counts wrong: %+v", res)
	}
	if res.NotFoundFailures != 1 || res.NoPathFailures != 1 || res.InfrastructureFailures != 1 {
		t.Fatalf("failure breakdown wrong: %+v", res)
	}
	if res.DirectPaths != 2 || res.IndirectPaths != 2 {
		t.Fatalf("path type breakdown wrong: %+v", res)
	}
	d := res.ConfidenceDistribution
	if d.High != 2 || d.Medium != 1 || d.Low != 1 {
		t.Fatalf("confidence_distribution = %+v", d)
	}
	if want := 4.0 / 7.0; res.SuccessRate != want {
		t.Fatalf("success_rate = %v, want %v", res.SuccessRate, want)
	}
	wantAvg := (0.9 + 0.85 + 0.6 + 0.45) / 4
	if diff := res.AverageConfidence - wantAvg; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("average_confidence = %v, want %v", res.AverageConfidence, wantAvg)
	}
}

func TestStatisticsWindowDefaultsAndCaps(t *testing.T) {
	e := newTestEngine(Deps{Events: &fakeEventStore{}})

	if res := e.Statistics(context.Background(), 0); res.PeriodDays != 30 {
		t.Fatalf("zero days should default to 30, got %d", res.PeriodDays)
	}
	if res := e.Statistics(context.Background(), -5); res.PeriodDays != 30 {
		t.Fatalf("negative days should default to 30, got %d", res.PeriodDays)
	}
	if res := e.Statistics(context.Background(), 100000); res.PeriodDays != 365 {
		t.Fatalf("oversized window should cap at 365, got %d", res.PeriodDays)
	}
}

func TestStatisticsEmptyWindow(t *testing.T) {
	e := newTestEngine(Deps{Events: &fakeEventStore{}})
	res := e.Statistics(context.Background(), 7)
	if !res.Success || res.TotalInferences != 0 {
		t.Fatalf("empty window must succeed with zero counts: %+v", res)
	}
	if res.SuccessRate != 0 || res.AverageConfidence != 0 {
		t.Fatalf("rates must stay zero without events: %+v", res)
	}
}

func TestStatisticsUnavailableStore(t *testing.T) {
	e := newTestEngine(Deps{})
	if res := e.Statistics(context.Background(), 7); res.Success || res.Error == "" {
		t.Fatalf("nil event store must be a structured failure: %+v", res)
	}

	e = newTestEngine(Deps{Events: &fakeEventStore{err: errors.New("pg down")}})
	if res := e.Statistics(context.Background(), 7); res.Success || res.Error == "" {
		t.Fatalf("store error must be a structured failure: %+v", res)
	}
}
