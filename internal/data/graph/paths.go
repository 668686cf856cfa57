package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/modbridge/modbridge-backend/internal/inference/engine"
)

// maxPathRecords bounds one query's result set; the engine sorts and trims
// further, so returning more buys nothing.
const maxPathRecords = 50

// FindConversionPaths runs a variable-length traversal from the start node
// and returns every route of 1..maxDepth hops ending on the target platform
// (or a platform-neutral node). The depth bound is inlined because Cypher
// does not parameterize variable-length ranges.
func (g *ConversionGraph) FindConversionPaths(ctx context.Context, startNodeID, targetPlatform string, maxDepth int) ([]engine.RawPathRecord, error) {
	if g == nil || g.client == nil || g.client.Driver == nil {
		return nil, fmt.Errorf("conversion graph not initialized")
	}
	if maxDepth < 1 {
		maxDepth = 1
	}

	query := fmt.Sprintf(`
MATCH p = (s:Concept {id: $start_id})-[:CONVERTS_TO|TRANSFORMS*1..%d]->(t:Concept)
WHERE toLower(t.platform) IN [toLower($platform), 'both'] OR toLower($platform) = 'both'
RETURN
  [n IN nodes(p) | {id: n.id, name: n.name, platform: n.platform, minecraft_version: n.minecraft_version}] AS nodes,
  [r IN relationships(p) | {type: type(r), confidence: coalesce(r.confidence, 0.0), success_rate: coalesce(r.success_rate, 0.0), usage_count: coalesce(r.usage_count, 0), supported_features: coalesce(r.supported_features, [])}] AS rels,
  length(p) AS path_length
ORDER BY path_length ASC
LIMIT $limit
`, maxDepth)

	session := g.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	rows, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"start_id": startNodeID,
			"platform": strings.ToLower(strings.TrimSpace(targetPlatform)),
			"limit":    maxPathRecords,
		})
		if err != nil {
			return nil, err
		}
		out := []engine.RawPathRecord{}
		for res.Next(ctx) {
			rec := res.Record()
			parsed, ok := parsePathRecord(rec)
			if !ok {
				continue
			}
			out = append(out, parsed)
		}
		return out, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("conversion path query: %w", err)
	}
	return rows.([]engine.RawPathRecord), nil
}

func parsePathRecord(rec *neo4j.Record) (engine.RawPathRecord, bool) {
	rawNodes, _ := rec.Get("nodes")
	rawRels, _ := rec.Get("rels")
	rawLen, _ := rec.Get("path_length")

	nodeList, ok := rawNodes.([]any)
	if !ok || len(nodeList) < 2 {
		return engine.RawPathRecord{}, false
	}
	relList, ok := rawRels.([]any)
	if !ok || len(relList) == 0 {
		return engine.RawPathRecord{}, false
	}

	out := engine.RawPathRecord{PathLength: int(asInt64(rawLen))}

	for _, n := range nodeList {
		m, ok := n.(map[string]any)
		if !ok {
			return engine.RawPathRecord{}, false
		}
		out.Nodes = append(out.Nodes, engine.RawNode{
			ID:               asString(m["id"]),
			Name:             asString(m["name"]),
			Platform:         asString(m["platform"]),
			MinecraftVersion: asString(m["minecraft_version"]),
		})
	}
	out.EndNode = out.Nodes[len(out.Nodes)-1]

	confidence := 1.0
	var rateSum float64
	var minUsage int64 = -1
	var features []string
	for i, r := range relList {
		m, ok := r.(map[string]any)
		if !ok {
			return engine.RawPathRecord{}, false
		}
		rel := engine.RawRelationship{
			Type:       asString(m["type"]),
			Confidence: asFloat(m["confidence"]),
		}
		out.Relationships = append(out.Relationships, rel)
		confidence *= rel.Confidence
		rateSum += asFloat(m["success_rate"])
		usage := asInt64(m["usage_count"])
		if minUsage < 0 || usage < minUsage {
			minUsage = usage
		}
		// A feature survives the route only if every hop supports it.
		hop := asStringSlice(m["supported_features"])
		if i == 0 {
			features = hop
		} else {
			features = intersect(features, hop)
		}
	}
	out.Confidence = confidence
	out.SuccessRate = rateSum / float64(len(relList))
	if minUsage > 0 {
		out.UsageCount = minUsage
	}
	out.SupportedFeatures = features
	return out, true
}

func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := map[string]bool{}
	for _, s := range b {
		set[s] = true
	}
	out := []string{}
	for _, s := range a {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	default:
		return 0
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case float64:
		return int64(t)
	default:
		return 0
	}
}

func asStringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
