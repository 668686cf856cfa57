package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/modbridge/modbridge-backend/internal/domain"
	"github.com/modbridge/modbridge-backend/internal/platform/logger"
)

type fakeConceptStore struct {
	nodes map[string]*domain.ConceptNode // name|platform|version
	names map[string][]string
	err   error
}

func (f *fakeConceptStore) key(name, platform, version string) string {
	return name + "|" + platform + "|" + version
}

func (f *fakeConceptStore) add(name, platform, version string) *domain.ConceptNode {
	if f.nodes == nil {
		f.nodes = map[string]*domain.ConceptNode{}
	}
	if f.names == nil {
		f.names = map[string][]string{}
	}
	node := &domain.ConceptNode{ID: uuid.New(), Name: name, Platform: platform, MinecraftVersion: version}
	f.nodes[f.key(name, platform, version)] = node
	f.names[platform] = append(f.names[platform], name)
	return node
}

func (f *fakeConceptStore) GetByNamePlatformVersion(_ context.Context, name, platform, version string) (*domain.ConceptNode, error) {
	if f.err != nil {
		return nil, f.err
	}
	if n, ok := f.nodes[f.key(name, platform, version)]; ok {
		return n, nil
	}
	if n, ok := f.nodes[f.key(name, PlatformBoth, version)]; ok {
		return n, nil
	}
	return nil, nil
}

func (f *fakeConceptStore) ListNamesByPlatform(_ context.Context, platform string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.names[platform], nil
}

type fakeGraph struct {
	records map[string][]RawPathRecord
	err     error
	calls   int
}

func (f *fakeGraph) add(startID string, rec RawPathRecord) {
	if f.records == nil {
		f.records = map[string][]RawPathRecord{}
	}
	f.records[startID] = append(f.records[startID], rec)
}

func (f *fakeGraph) FindConversionPaths(_ context.Context, startNodeID, _ string, maxDepth int) ([]RawPathRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := []RawPathRecord{}
	for _, rec := range f.records[startNodeID] {
		if rec.PathLength <= maxDepth {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeReinforcer struct {
	updated    int
	err        error
	gotSteps   []PathStep
	gotOutcome ReinforcementOutcome
}

func (f *fakeReinforcer) ReinforceEdges(_ context.Context, steps []PathStep, outcome ReinforcementOutcome) (int, error) {
	f.gotSteps = steps
	f.gotOutcome = outcome
	if f.err != nil {
		return 0, f.err
	}
	return f.updated, nil
}

type fakeEventStore struct {
	inferences []*domain.InferenceEvent
	learnings  []*domain.LearningEvent
	err        error
}

func (f *fakeEventStore) RecordInference(_ context.Context, ev *domain.InferenceEvent) error {
	if f.err != nil {
		return f.err
	}
	f.inferences = append(f.inferences, ev)
	return nil
}

func (f *fakeEventStore) RecordLearning(_ context.Context, ev *domain.LearningEvent) error {
	if f.err != nil {
		return f.err
	}
	f.learnings = append(f.learnings, ev)
	return nil
}

func (f *fakeEventStore) ListInferencesSince(_ context.Context, since time.Time) ([]*domain.InferenceEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*domain.InferenceEvent{}
	for _, ev := range f.inferences {
		if !ev.CreatedAt.Before(since) {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakePatternStore struct {
	rows map[string][]*domain.ConversionPattern
	err  error
}

func (f *fakePatternStore) ListByTransformationType(_ context.Context, transformationType string) ([]*domain.ConversionPattern, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[transformationType], nil
}

type fakeModel struct {
	score float64
	err   error
}

func (f *fakeModel) PredictConfidence(context.Context, PatternInput) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.score, nil
}

func newTestEngine(deps Deps) *Engine {
	deps.Log = logger.NewNop()
	return New(DefaultConfig(), deps)
}

// twoNodeRecord builds a direct (single-hop) raw record.
func twoNodeRecord(src, dst RawNode, relType string, confidence, successRate float64, usage int64) RawPathRecord {
	return RawPathRecord{
		PathLength:    1,
		Confidence:    confidence,
		Nodes:         []RawNode{src, dst},
		EndNode:       dst,
		Relationships: []RawRelationship{{Type: relType, Confidence: confidence}},
		SuccessRate:   successRate,
		UsageCount:    usage,
	}
}

// chainRecord builds a multi-hop raw record from alternating nodes and edge
// confidences.
func chainRecord(nodes []RawNode, confidences []float64) RawPathRecord {
	if len(confidences) != len(nodes)-1 {
		panic(fmt.Sprintf("chainRecord: %d nodes need %d confidences", len(nodes), len(nodes)-1))
	}
	rels := make([]RawRelationship, 0, len(confidences))
	agg := 1.0
	for _, c := range confidences {
		rels = append(rels, RawRelationship{Type: "CONVERTS_TO", Confidence: c})
		agg *= c
	}
	return RawPathRecord{
		PathLength:    len(rels),
		Confidence:    agg,
		Nodes:         nodes,
		EndNode:       nodes[len(nodes)-1],
		Relationships: rels,
	}
}

func javaNode(name string) RawNode {
	return RawNode{ID: uuid.NewString(), Name: name, Platform: PlatformJava, MinecraftVersion: "1.19.3"}
}

func bedrockNode(name string) RawNode {
	return RawNode{ID: uuid.NewString(), Name: name, Platform: PlatformBedrock, MinecraftVersion: "1.19.3"}
}
