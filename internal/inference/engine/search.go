package engine

import (
	"context"
	"sort"
	"strings"
)

// platformMatches reports whether a node tagged with platform p satisfies
// the requested target platform. "both" is a wildcard on either side.
func platformMatches(p, target string) bool {
	p = strings.ToLower(strings.TrimSpace(p))
	target = strings.ToLower(strings.TrimSpace(target))
	return p == target || p == PlatformBoth || target == PlatformBoth
}

// queryGraph is the single choke point for the path-query primitive: it
// bounds the call with the configured timeout so a hung store degrades to a
// store error instead of hanging the inference.
func (e *Engine) queryGraph(ctx context.Context, startNodeID, targetPlatform string, maxDepth int) ([]RawPathRecord, error) {
	qctx, cancel := context.WithTimeout(ctx, e.cfg.GraphTimeout)
	defer cancel()
	return e.deps.Graph.FindConversionPaths(qctx, startNodeID, targetPlatform, maxDepth)
}

// findDirectPaths returns single-hop routes from the source node, best first.
// Any graph-store failure is absorbed into an empty result: direct-path
// absence triggers the indirect fallback, it is never fatal.
func (e *Engine) findDirectPaths(ctx context.Context, startNodeID, targetPlatform string) []ConversionPath {
	if e.deps.Graph == nil {
		return nil
	}
	records, err := e.queryGraph(ctx, startNodeID, targetPlatform, 1)
	if err != nil {
		e.log.Warn("direct path query degraded", "node_id", startNodeID, "error", err)
		return nil
	}
	paths := make([]ConversionPath, 0, len(records))
	for _, rec := range records {
		if rec.PathLength != 1 || len(rec.Relationships) != 1 {
			continue
		}
		if !platformMatches(rec.EndNode.Platform, targetPlatform) {
			continue
		}
		paths = append(paths, normalizePath(rec, PathTypeDirect))
	}
	sortPaths(paths)
	return paths
}

// findIndirectPaths returns multi-hop routes of length 2..maxDepth whose
// aggregate confidence is at least minConfidence (inclusive on both bounds).
// Same degradation policy as direct search.
func (e *Engine) findIndirectPaths(ctx context.Context, startNodeID, targetPlatform string, maxDepth int, minConfidence float64) []ConversionPath {
	if e.deps.Graph == nil {
		return nil
	}
	records, err := e.queryGraph(ctx, startNodeID, targetPlatform, maxDepth)
	if err != nil {
		e.log.Warn("indirect path query degraded", "node_id", startNodeID, "error", err)
		return nil
	}
	paths := make([]ConversionPath, 0, len(records))
	for _, rec := range records {
		if rec.PathLength < 2 || rec.PathLength > maxDepth {
			continue
		}
		if !platformMatches(rec.EndNode.Platform, targetPlatform) {
			continue
		}
		p := normalizePath(rec, PathTypeIndirect)
		if p.Confidence < minConfidence {
			continue
		}
		paths = append(paths, p)
	}
	sortPaths(paths)
	return paths
}

// normalizePath converts a raw graph record into the engine's path form.
// Aggregate confidence is the product of edge confidences; a single edge
// therefore keeps its own confidence unchanged.
func normalizePath(rec RawPathRecord, pathType string) ConversionPath {
	steps := make([]PathStep, 0, len(rec.Relationships))
	intermediates := []string{}
	for i, rel := range rec.Relationships {
		step := PathStep{RelationshipType: rel.Type}
		if i < len(rec.Nodes) {
			step.SourceConcept = rec.Nodes[i].Name
		}
		if i+1 < len(rec.Nodes) {
			step.TargetConcept = rec.Nodes[i+1].Name
			step.Platform = rec.Nodes[i+1].Platform
			step.MinecraftVersion = rec.Nodes[i+1].MinecraftVersion
		} else {
			step.TargetConcept = rec.EndNode.Name
			step.Platform = rec.EndNode.Platform
			step.MinecraftVersion = rec.EndNode.MinecraftVersion
		}
		steps = append(steps, step)
	}
	// Every node strictly between source and final target.
	for i := 1; i < len(rec.Nodes)-1; i++ {
		intermediates = append(intermediates, rec.Nodes[i].Name)
	}

	confidence := rec.Confidence
	if len(rec.Relationships) > 0 {
		confidence = 1
		for _, rel := range rec.Relationships {
			confidence *= rel.Confidence
		}
	}

	return ConversionPath{
		PathType:             pathType,
		Steps:                steps,
		Confidence:           confidence,
		PathLength:           len(steps),
		IntermediateConcepts: intermediates,
		SupportsFeatures:     rec.SupportedFeatures,
		SuccessRate:          rec.SuccessRate,
		UsageCount:           rec.UsageCount,
	}
}

// sortPaths orders by confidence descending; ties break toward the more
// exercised edge, then the shorter route.
func sortPaths(paths []ConversionPath) {
	sort.SliceStable(paths, func(i, j int) bool {
		if paths[i].Confidence != paths[j].Confidence {
			return paths[i].Confidence > paths[j].Confidence
		}
		if paths[i].UsageCount != paths[j].UsageCount {
			return paths[i].UsageCount > paths[j].UsageCount
		}
		return paths[i].PathLength < paths[j].PathLength
	})
}
