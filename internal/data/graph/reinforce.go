package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/modbridge/modbridge-backend/internal/inference/engine"
)

// ReinforceEdges folds one conversion outcome into the traversed edges:
// usage_count increments and success_rate moves toward the observed score by
// an exponentially-weighted update. Steps whose edge no longer exists match
// nothing and are skipped; the returned count is edges actually touched.
func (g *ConversionGraph) ReinforceEdges(ctx context.Context, steps []engine.PathStep, outcome engine.ReinforcementOutcome) (int, error) {
	if g == nil || g.client == nil || g.client.Driver == nil {
		return 0, fmt.Errorf("conversion graph not initialized")
	}
	if len(steps) == 0 {
		return 0, nil
	}

	hops := make([]map[string]any, 0, len(steps))
	for _, s := range steps {
		if s.SourceConcept == "" || s.TargetConcept == "" {
			continue
		}
		relType := s.RelationshipType
		if relType == "" {
			relType = "CONVERTS_TO"
		}
		hops = append(hops, map[string]any{
			"source":   s.SourceConcept,
			"target":   s.TargetConcept,
			"rel_type": relType,
		})
	}
	if len(hops) == 0 {
		return 0, nil
	}

	session := g.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	updated, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
UNWIND $hops AS h
MATCH (a:Concept {name: h.source})-[e]->(b:Concept {name: h.target})
WHERE type(e) = h.rel_type
SET e.usage_count = coalesce(e.usage_count, 0) + 1,
    e.success_rate = (1.0 - $alpha) * coalesce(e.success_rate, $observed) + $alpha * $observed,
    e.last_outcome_success = $success
RETURN count(e) AS updated
`, map[string]any{
			"hops":     hops,
			"alpha":    outcome.Alpha,
			"observed": outcome.Observed,
			"success":  outcome.Success,
		})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		raw, _ := rec.Get("updated")
		return raw, nil
	})
	if err != nil {
		return 0, fmt.Errorf("edge reinforcement: %w", err)
	}

	n := int(asInt64(updated))
	g.log.Debug("edges reinforced", "requested", len(hops), "updated", n,
		"observed", outcome.Observed, "alpha", outcome.Alpha)
	return n, nil
}
