package engine

import (
	"context"
	"testing"
)

// seedSharedRoutes wires two concepts whose routes share the final hop
// ("shared_mid" -> "bedrock_common") plus one independent concept.
func seedSharedRoutes(t *testing.T) (*fakeConceptStore, *fakeGraph) {
	t.Helper()
	concepts := &fakeConceptStore{}
	graph := &fakeGraph{}

	mid := RawNode{ID: "mid", Name: "shared_mid", Platform: PlatformBoth, MinecraftVersion: "1.19.3"}
	common := bedrockNode("bedrock_common")

	a := concepts.add("java_chest", PlatformJava, "1.19.3")
	graph.add(a.ID.String(), chainRecord([]RawNode{
		{ID: a.ID.String(), Name: "java_chest", Platform: PlatformJava}, mid, common,
	}, []float64{0.9, 0.9}))

	b := concepts.add("java_barrel", PlatformJava, "1.19.3")
	graph.add(b.ID.String(), chainRecord([]RawNode{
		{ID: b.ID.String(), Name: "java_barrel", Platform: PlatformJava}, mid, common,
	}, []float64{0.8, 0.9}))

	c := concepts.add("java_lever", PlatformJava, "1.19.3")
	graph.add(c.ID.String(), twoNodeRecord(
		RawNode{ID: c.ID.String(), Name: "java_lever", Platform: PlatformJava},
		bedrockNode("bedrock_lever"), "CONVERTS_TO", 0.95, 0, 0))

	return concepts, graph
}

func TestOptimizeSequenceFindsSharedSteps(t *testing.T) {
	concepts, graph := seedSharedRoutes(t)
	e := newTestEngine(Deps{Concepts: concepts, Graph: graph})

	res := e.OptimizeSequence(context.Background(), []SequenceStep{
		{Concept: "java_chest"},
		{Concept: "java_barrel"},
		{Concept: "java_lever"},
	}, PlatformBedrock, "1.19.3")

	if !res.Success {
		t.Fatalf("optimization failed: %q", res.Error)
	}
	if len(res.SharedSteps) != 1 {
		t.Fatalf("shared_steps = %d, want 1 (the common final hop): %+v", len(res.SharedSteps), res.SharedSteps)
	}
	s := res.SharedSteps[0]
	if s.Step.SourceConcept != "shared_mid" || s.Step.TargetConcept != "bedrock_common" {
		t.Fatalf("wrong shared step: %+v", s.Step)
	}
	if len(s.Concepts) != 2 || s.Occurrences != 2 {
		t.Fatalf("shared step attribution wrong: %+v", s)
	}

	// Coupled concepts land in one group, the independent one in another.
	if len(res.ProcessingGroups) != 2 {
		t.Fatalf("processing_groups = %d, want 2: %+v", len(res.ProcessingGroups), res.ProcessingGroups)
	}
	var coupled, solo *ProcessingGroup
	for i := range res.ProcessingGroups {
		if len(res.ProcessingGroups[i].Concepts) == 2 {
			coupled = &res.ProcessingGroups[i]
		} else {
			solo = &res.ProcessingGroups[i]
		}
	}
	if coupled == nil || solo == nil {
		t.Fatalf("expected one pair group and one solo group: %+v", res.ProcessingGroups)
	}
	if coupled.SharedSteps != 1 || coupled.TotalSteps != 4 {
		t.Fatalf("coupled group = %+v", coupled)
	}
	// 4 hops in the pair, one shared: 3 unique hops to execute.
	if coupled.EstimatedMS != 3*baseStepCostMS {
		t.Fatalf("coupled group estimate = %d, want %d", coupled.EstimatedMS, 3*baseStepCostMS)
	}

	// Sequential: 5 total hops. Optimized: slowest group (3 unique hops).
	if res.TotalSteps != 5 {
		t.Fatalf("total_steps = %d, want 5", res.TotalSteps)
	}
	if res.SequentialEstimateMS != 5*baseStepCostMS {
		t.Fatalf("sequential estimate = %d", res.SequentialEstimateMS)
	}
	if res.OptimizedEstimateMS != 3*baseStepCostMS {
		t.Fatalf("optimized estimate = %d", res.OptimizedEstimateMS)
	}
	if res.SavingsMS != 2*baseStepCostMS || res.SavingsPercent != 40 {
		t.Fatalf("savings = %dms (%.1f%%)", res.SavingsMS, res.SavingsPercent)
	}
}

func TestOptimizeSequenceUnresolvedConcepts(t *testing.T) {
	concepts, graph := seedSharedRoutes(t)
	e := newTestEngine(Deps{Concepts: concepts, Graph: graph})

	res := e.OptimizeSequence(context.Background(), []SequenceStep{
		{Concept: "java_lever"},
		{Concept: "no_such_concept"},
	}, PlatformBedrock, "1.19.3")

	if !res.Success {
		t.Fatalf("partial resolution must still optimize: %q", res.Error)
	}
	if len(res.UnresolvedConcepts) != 1 || res.UnresolvedConcepts[0] != "no_such_concept" {
		t.Fatalf("unresolved_concepts = %v", res.UnresolvedConcepts)
	}
}

func TestOptimizeSequenceEmptyAndUnresolvable(t *testing.T) {
	e := newTestEngine(Deps{Concepts: &fakeConceptStore{}, Graph: &fakeGraph{}})

	res := e.OptimizeSequence(context.Background(), nil, PlatformBedrock, "1.19.3")
	if res.Success || res.Error == "" {
		t.Fatalf("empty sequence must fail softly: %+v", res)
	}

	res = e.OptimizeSequence(context.Background(), []SequenceStep{{Concept: "ghost"}}, PlatformBedrock, "1.19.3")
	if res.Success {
		t.Fatal("fully unresolvable sequence must report failure")
	}
	// Soft failure keeps the envelope usable by callers.
	if res.ProcessingGroups == nil || res.SharedSteps == nil {
		t.Fatal("collections must be non-nil on failure")
	}
}

func TestOptimizeSequenceDeduplicatesConcepts(t *testing.T) {
	concepts, graph := seedSharedRoutes(t)
	e := newTestEngine(Deps{Concepts: concepts, Graph: graph})

	res := e.OptimizeSequence(context.Background(), []SequenceStep{
		{Concept: "java_lever"},
		{Concept: "java_lever"},
		{Concept: " java_lever "},
	}, PlatformBedrock, "1.19.3")

	if !res.Success {
		t.Fatalf("optimization failed: %q", res.Error)
	}
	if res.TotalSteps != 1 {
		t.Fatalf("duplicates not collapsed, total_steps = %d", res.TotalSteps)
	}
	if len(res.ProcessingGroups) != 1 || len(res.ProcessingGroups[0].Concepts) != 1 {
		t.Fatalf("groups = %+v", res.ProcessingGroups)
	}
}
