package engine

import (
	"context"
	"time"

	"github.com/modbridge/modbridge-backend/internal/domain"
)

// RawNode is a graph vertex as returned by the path-query primitive.
type RawNode struct {
	ID               string
	Name             string
	Platform         string
	MinecraftVersion string
}

// RawRelationship is one traversed edge with its per-hop metadata.
type RawRelationship struct {
	Type       string
	Confidence float64
}

// RawPathRecord is one candidate route as the graph store reports it,
// before normalization into a ConversionPath. Nodes holds the full chain,
// source first, end node last.
type RawPathRecord struct {
	PathLength        int
	Confidence        float64
	Nodes             []RawNode
	EndNode           RawNode
	Relationships     []RawRelationship
	SupportedFeatures []string
	SuccessRate       float64
	UsageCount        int64
}

// GraphPathProvider is the path-query primitive the engine consumes.
// The production adapter runs Cypher against neo4j; tests use an
// in-memory fake.
type GraphPathProvider interface {
	FindConversionPaths(ctx context.Context, startNodeID, targetPlatform string, maxDepth int) ([]RawPathRecord, error)
}

// ReinforcementOutcome is the observed quality of an applied conversion,
// folded into traversed edges by an EdgeReinforcer.
type ReinforcementOutcome struct {
	Observed float64
	Alpha    float64
	Success  bool
}

// EdgeReinforcer applies the learning feedback signal to the graph store.
// Returns the number of edges actually updated; steps that no longer match
// an edge are skipped, not errors.
type EdgeReinforcer interface {
	ReinforceEdges(ctx context.Context, steps []PathStep, outcome ReinforcementOutcome) (int, error)
}

// ConceptStore resolves concept nodes from the relational store.
// A miss is (nil, nil); errors are reserved for store failures.
type ConceptStore interface {
	GetByNamePlatformVersion(ctx context.Context, name, platform, version string) (*domain.ConceptNode, error)
	ListNamesByPlatform(ctx context.Context, platform string) ([]string, error)
}

// PatternStore exposes historical conversion patterns for validation blending.
type PatternStore interface {
	ListByTransformationType(ctx context.Context, transformationType string) ([]*domain.ConversionPattern, error)
}

// EventStore records inference outcomes and serves the statistics window.
type EventStore interface {
	RecordInference(ctx context.Context, ev *domain.InferenceEvent) error
	RecordLearning(ctx context.Context, ev *domain.LearningEvent) error
	ListInferencesSince(ctx context.Context, since time.Time) ([]*domain.InferenceEvent, error)
}

// ConfidenceModel is the optional ML refinement path. Absence (nil) or
// failure never blocks graph-only inference.
type ConfidenceModel interface {
	PredictConfidence(ctx context.Context, p PatternInput) (float64, error)
}

// ResultCache is an optional read-through cache for single-concept results.
type ResultCache interface {
	GetInference(ctx context.Context, key string) (*InferenceResult, bool)
	SetInference(ctx context.Context, key string, res *InferenceResult, ttl time.Duration)
}
