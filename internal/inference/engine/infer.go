package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modbridge/modbridge-backend/internal/domain"
)

// Infer resolves a Java-side concept and searches the knowledge graph for the
// best conversion route to the target platform. Expected negative outcomes
// (unknown concept, no route) come back as success=false results. Nothing
// surfaces as an error: even a missing store is reported as a structured
// infrastructure failure.
func (e *Engine) Infer(ctx context.Context, concept, targetPlatform, version string, opts *InferenceOptions) InferenceResult {
	started := time.Now()
	eff := e.resolveOptions(opts)

	res := InferenceResult{
		Concept:          concept,
		TargetPlatform:   targetPlatform,
		MinecraftVersion: version,
		Suggestions:      []string{},
		Metadata: InferenceMetadata{
			Algorithm: algorithmID,
			Timestamp: time.Now().UTC(),
			Options:   eff,
		},
	}

	concept = strings.TrimSpace(concept)
	if concept == "" {
		res.Error = "concept name is required"
		res.ErrorKind = FailureNotFound
		return e.finishInference(ctx, res, started)
	}

	cacheKey := inferenceCacheKey(concept, targetPlatform, version, eff)
	if e.deps.Cache != nil {
		if cached, ok := e.deps.Cache.GetInference(ctx, cacheKey); ok && cached != nil {
			out := *cached
			out.Metadata.CacheHit = true
			out.Metadata.DurationMS = time.Since(started).Milliseconds()
			return out
		}
	}

	node, err := e.resolveConcept(ctx, concept, PlatformJava, version)
	if err != nil {
		res.Error = fmt.Sprintf("concept lookup unavailable: %v", err)
		res.ErrorKind = FailureInfrastructure
		return e.finishInference(ctx, res, started)
	}
	if node == nil {
		res.Error = fmt.Sprintf("concept %q not found for version %s", concept, version)
		res.ErrorKind = FailureNotFound
		res.Suggestions = e.SuggestSimilar(ctx, concept, PlatformJava)
		return e.finishInference(ctx, res, started)
	}

	if e.deps.Graph == nil {
		res.Error = "graph store unavailable"
		res.ErrorKind = FailureInfrastructure
		return e.finishInference(ctx, res, started)
	}

	// Direct paths are higher precision and cheaper to validate, so they are
	// always attempted first; indirect search trades latency for recall.
	paths := e.findDirectPaths(ctx, node.ID.String(), targetPlatform)
	pathType := PathTypeDirect
	if len(paths) == 0 {
		paths = e.findIndirectPaths(ctx, node.ID.String(), targetPlatform, eff.MaxDepth, eff.MinConfidence)
		pathType = PathTypeIndirect
	}
	if len(paths) == 0 {
		res.Error = fmt.Sprintf("no conversion path from %q to %s within depth %d at confidence >= %.2f",
			concept, targetPlatform, eff.MaxDepth, eff.MinConfidence)
		res.ErrorKind = FailureNoPath
		return e.finishInference(ctx, res, started)
	}

	res.Success = true
	res.PathType = pathType
	primary := paths[0]
	res.PrimaryPath = &primary
	if eff.IncludeAlternatives && len(paths) > 1 {
		n := len(paths) - 1
		if n > e.cfg.MaxAlternatives {
			n = e.cfg.MaxAlternatives
		}
		res.AlternativePaths = paths[1 : 1+n]
	}

	out := e.finishInference(ctx, res, started)
	if e.deps.Cache != nil {
		e.deps.Cache.SetInference(ctx, cacheKey, &out, e.cfg.CacheTTL)
	}
	return out
}

// finishInference stamps timing and records the event. Event recording is
// best-effort; a failing event store never changes the caller's result.
func (e *Engine) finishInference(ctx context.Context, res InferenceResult, started time.Time) InferenceResult {
	res.Metadata.DurationMS = time.Since(started).Milliseconds()
	if res.Suggestions == nil {
		res.Suggestions = []string{}
	}
	if e.deps.Events != nil {
		ev := &domain.InferenceEvent{
			Concept:          res.Concept,
			TargetPlatform:   res.TargetPlatform,
			MinecraftVersion: res.MinecraftVersion,
			Success:          res.Success,
			FailureKind:      res.ErrorKind,
			PathType:         res.PathType,
			DurationMS:       res.Metadata.DurationMS,
			CreatedAt:        time.Now().UTC(),
		}
		if res.PrimaryPath != nil {
			ev.Confidence = res.PrimaryPath.Confidence
		}
		if err := e.deps.Events.RecordInference(ctx, ev); err != nil {
			e.log.Warn("inference event not recorded", "concept", res.Concept, "error", err)
		}
	}
	return res
}

func inferenceCacheKey(concept, targetPlatform, version string, eff effectiveOptions) string {
	return fmt.Sprintf("inference:%s|%s|%s|d%d|c%.3f|a%t",
		normalizeConceptName(concept), strings.ToLower(targetPlatform), version,
		eff.MaxDepth, eff.MinConfidence, eff.IncludeAlternatives)
}
