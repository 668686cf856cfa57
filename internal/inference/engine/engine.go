package engine

import (
	"time"

	"github.com/modbridge/modbridge-backend/internal/platform/logger"
)

const algorithmID = "graph-path-inference/v1"

// Config holds the engine's tuning knobs. Immutable after New; there is no
// other cross-request engine state.
type Config struct {
	DefaultMaxDepth      int
	MaxDepthCeiling      int
	DefaultMinConfidence float64
	MinSimilarity        float64
	MaxSuggestions       int
	MaxAlternatives      int
	GraphTimeout         time.Duration
	BatchConcurrency     int
	CacheTTL             time.Duration
	LearningAlpha        float64
}

func DefaultConfig() Config {
	return Config{
		DefaultMaxDepth:      5,
		MaxDepthCeiling:      8,
		DefaultMinConfidence: 0.5,
		MinSimilarity:        0.45,
		MaxSuggestions:       5,
		MaxAlternatives:      3,
		GraphTimeout:         5 * time.Second,
		BatchConcurrency:     4,
		CacheTTL:             5 * time.Minute,
		LearningAlpha:        0.3,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DefaultMaxDepth <= 0 {
		c.DefaultMaxDepth = def.DefaultMaxDepth
	}
	if c.MaxDepthCeiling <= 0 {
		c.MaxDepthCeiling = def.MaxDepthCeiling
	}
	if c.DefaultMaxDepth > c.MaxDepthCeiling {
		c.DefaultMaxDepth = c.MaxDepthCeiling
	}
	if c.DefaultMinConfidence <= 0 || c.DefaultMinConfidence > 1 {
		c.DefaultMinConfidence = def.DefaultMinConfidence
	}
	if c.MinSimilarity <= 0 || c.MinSimilarity > 1 {
		c.MinSimilarity = def.MinSimilarity
	}
	if c.MaxSuggestions <= 0 {
		c.MaxSuggestions = def.MaxSuggestions
	}
	if c.MaxAlternatives <= 0 {
		c.MaxAlternatives = def.MaxAlternatives
	}
	if c.GraphTimeout <= 0 {
		c.GraphTimeout = def.GraphTimeout
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = def.BatchConcurrency
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = def.CacheTTL
	}
	if c.LearningAlpha <= 0 || c.LearningAlpha >= 1 {
		c.LearningAlpha = def.LearningAlpha
	}
	return c
}

// Deps are the engine's collaborators. Model and Cache are optional; the
// others being nil is treated as an infrastructure failure at call time,
// surfaced as a structured result rather than a panic or error.
type Deps struct {
	Concepts  ConceptStore
	Patterns  PatternStore
	Events    EventStore
	Graph     GraphPathProvider
	Reinforce EdgeReinforcer
	Model     ConfidenceModel
	Cache     ResultCache
	Log       *logger.Logger
}

// Engine is stateless and safe for concurrent use; all calls read from the
// shared stores and write only through the additive learning path.
type Engine struct {
	cfg  Config
	deps Deps
	log  *logger.Logger
}

func New(cfg Config, deps Deps) *Engine {
	log := deps.Log
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{
		cfg:  cfg.withDefaults(),
		deps: deps,
		log:  log.With("component", "InferenceEngine"),
	}
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) resolveOptions(opts *InferenceOptions) effectiveOptions {
	eff := effectiveOptions{
		MaxDepth:            e.cfg.DefaultMaxDepth,
		MinConfidence:       e.cfg.DefaultMinConfidence,
		IncludeAlternatives: true,
	}
	if opts == nil {
		return eff
	}
	if opts.MaxDepth > 0 {
		eff.MaxDepth = opts.MaxDepth
	}
	// Hard ceiling regardless of caller input.
	if eff.MaxDepth > e.cfg.MaxDepthCeiling {
		eff.MaxDepth = e.cfg.MaxDepthCeiling
	}
	if opts.MinConfidence != nil && *opts.MinConfidence >= 0 && *opts.MinConfidence <= 1 {
		eff.MinConfidence = *opts.MinConfidence
	}
	if opts.IncludeAlternatives != nil {
		eff.IncludeAlternatives = *opts.IncludeAlternatives
	}
	return eff
}
