package engine

import "time"

const (
	PathTypeDirect   = "direct"
	PathTypeIndirect = "indirect"

	PlatformJava    = "java"
	PlatformBedrock = "bedrock"
	PlatformBoth    = "both"
)

// Failure kinds carried on InferenceResult.ErrorKind and InferenceEvent rows.
const (
	FailureNotFound       = "not_found"
	FailureNoPath         = "no_path"
	FailureInfrastructure = "infrastructure"
	FailureCancelled      = "cancelled"
)

// PathStep is one hop of a conversion route.
type PathStep struct {
	SourceConcept    string `json:"source_concept"`
	TargetConcept    string `json:"target_concept"`
	RelationshipType string `json:"relationship_type"`
	Platform         string `json:"platform"`
	MinecraftVersion string `json:"minecraft_version"`
}

// ConversionPath is the normalized form of one candidate route from a source
// concept to a target-platform concept. Constructed fresh per inference call,
// never persisted.
type ConversionPath struct {
	PathType             string     `json:"path_type"`
	Steps                []PathStep `json:"steps"`
	Confidence           float64    `json:"confidence"`
	PathLength           int        `json:"path_length"`
	IntermediateConcepts []string   `json:"intermediate_concepts"`
	SupportsFeatures     []string   `json:"supports_features,omitempty"`
	SuccessRate          float64    `json:"success_rate"`
	UsageCount           int64      `json:"usage_count"`
}

// InferenceOptions are caller overrides. Nil pointers mean "use the engine
// default"; zero is a meaningful value for MinConfidence.
type InferenceOptions struct {
	MaxDepth            int      `json:"max_depth,omitempty"`
	MinConfidence       *float64 `json:"min_confidence,omitempty"`
	IncludeAlternatives *bool    `json:"include_alternatives,omitempty"`
}

type effectiveOptions struct {
	MaxDepth            int     `json:"max_depth"`
	MinConfidence       float64 `json:"min_confidence"`
	IncludeAlternatives bool    `json:"include_alternatives"`
}

// InferenceMetadata is attached to every result, success or failure.
type InferenceMetadata struct {
	Algorithm  string           `json:"algorithm"`
	Timestamp  time.Time        `json:"timestamp"`
	Options    effectiveOptions `json:"options"`
	DurationMS int64            `json:"duration_ms"`
	CacheHit   bool             `json:"cache_hit,omitempty"`
}

// InferenceResult is the top-level envelope for a single-concept inference.
type InferenceResult struct {
	Success          bool              `json:"success"`
	Concept          string            `json:"concept"`
	TargetPlatform   string            `json:"target_platform"`
	MinecraftVersion string            `json:"minecraft_version"`
	PathType         string            `json:"path_type,omitempty"`
	PrimaryPath      *ConversionPath   `json:"primary_path,omitempty"`
	AlternativePaths []ConversionPath  `json:"alternative_paths,omitempty"`
	Error            string            `json:"error,omitempty"`
	ErrorKind        string            `json:"error_kind,omitempty"`
	Suggestions      []string          `json:"suggestions"`
	Metadata         InferenceMetadata `json:"inference_metadata"`
}

// FailedConcept correlates a batch failure back to its input concept.
type FailedConcept struct {
	Concept     string   `json:"concept"`
	Error       string   `json:"error"`
	ErrorKind   string   `json:"error_kind"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type BatchMetadata struct {
	TotalConcepts int   `json:"total_concepts"`
	Succeeded     int   `json:"succeeded"`
	Failed        int   `json:"failed"`
	DurationMS    int64 `json:"duration_ms"`
	Concurrency   int   `json:"concurrency"`
	Cancelled     bool  `json:"cancelled,omitempty"`
}

// BatchInferenceResult aggregates per-concept results. Success reflects
// orchestration only; individual concepts may still fail.
type BatchInferenceResult struct {
	Success        bool                       `json:"success"`
	ConceptPaths   map[string]InferenceResult `json:"concept_paths"`
	FailedConcepts []FailedConcept            `json:"failed_concepts"`
	BatchMetadata  BatchMetadata              `json:"batch_metadata"`
}

// SequenceStep is one planned step of a multi-concept conversion job.
type SequenceStep struct {
	Concept    string  `json:"concept"`
	Confidence float64 `json:"confidence"`
}

// SharedStep is a hop that appears in the routes of two or more concepts and
// can therefore be computed once and reused.
type SharedStep struct {
	Step        PathStep `json:"step"`
	Concepts    []string `json:"concepts"`
	Occurrences int      `json:"occurrences"`
}

type ProcessingGroup struct {
	Concepts    []string `json:"concepts"`
	TotalSteps  int      `json:"total_steps"`
	SharedSteps int      `json:"shared_steps"`
	EstimatedMS int64    `json:"estimated_ms"`
}

type OptimizationResult struct {
	Success              bool              `json:"success"`
	Error                string            `json:"error,omitempty"`
	ProcessingGroups     []ProcessingGroup `json:"processing_groups"`
	SharedSteps          []SharedStep      `json:"shared_steps"`
	UnresolvedConcepts   []string          `json:"unresolved_concepts,omitempty"`
	TotalSteps           int               `json:"total_steps"`
	SequentialEstimateMS int64             `json:"sequential_estimate_ms"`
	OptimizedEstimateMS  int64             `json:"optimized_estimate_ms"`
	SavingsMS            int64             `json:"savings_ms"`
	SavingsPercent       float64           `json:"savings_percent"`
}

// PatternInput is a candidate conversion pattern submitted for validation.
type PatternInput struct {
	SourceConcept      string  `json:"source_concept"`
	TargetConcept      string  `json:"target_concept"`
	TransformationType string  `json:"transformation_type"`
	Confidence         float64 `json:"confidence"`
	Platform           string  `json:"platform"`
	MinecraftVersion   string  `json:"minecraft_version"`
}

type ValidationResult struct {
	IsValid           bool     `json:"is_valid"`
	ValidationErrors  []string `json:"validation_errors"`
	ConfidenceScore   float64  `json:"confidence_score"`
	HistoricalSamples int      `json:"historical_samples"`
	ModelAdjusted     bool     `json:"model_adjusted,omitempty"`
}

type CompatibilityResult struct {
	IsCompatible       bool    `json:"is_compatible"`
	CompatibilityScore float64 `json:"compatibility_score"`
	Reason             string  `json:"reason,omitempty"`
}

// ConversionOutcome describes the path actually taken by an applied
// conversion and whether it produced a working result.
type ConversionOutcome struct {
	PathSteps []PathStep `json:"path_steps"`
	PathType  string     `json:"path_type"`
	Success   bool       `json:"success"`
}

// SuccessMetrics carries the observed quality signals of a conversion.
// UserRating is on the 0..5 community scale.
type SuccessMetrics struct {
	Confidence float64 `json:"confidence"`
	Accuracy   float64 `json:"accuracy"`
	UserRating float64 `json:"user_rating"`
}

type LearningResult struct {
	Success         bool    `json:"success"`
	LearningEventID string  `json:"learning_event_id,omitempty"`
	EdgesUpdated    int     `json:"edges_updated"`
	ObservedScore   float64 `json:"observed_score"`
	Applied         bool    `json:"applied"`
	Error           string  `json:"error,omitempty"`
}

type ConfidenceDistribution struct {
	High   int `json:"high"`   // >= 0.8
	Medium int `json:"medium"` // >= 0.5
	Low    int `json:"low"`    // < 0.5
}

type StatisticsResult struct {
	Success                bool                   `json:"success"`
	Error                  string                 `json:"error,omitempty"`
	PeriodDays             int                    `json:"period_days"`
	TotalInferences        int                    `json:"total_inferences"`
	Succeeded              int                    `json:"succeeded"`
	Failed                 int                    `json:"failed"`
	SuccessRate            float64                `json:"success_rate"`
	NotFoundFailures       int                    `json:"not_found_failures"`
	NoPathFailures         int                    `json:"no_path_failures"`
	InfrastructureFailures int                    `json:"infrastructure_failures"`
	DirectPaths            int                    `json:"direct_paths"`
	IndirectPaths          int                    `json:"indirect_paths"`
	AverageConfidence      float64                `json:"average_confidence"`
	ConfidenceDistribution ConfidenceDistribution `json:"confidence_distribution"`
}
