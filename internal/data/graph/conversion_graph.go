package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/modbridge/modbridge-backend/internal/platform/logger"
	"github.com/modbridge/modbridge-backend/internal/platform/neo4jdb"
)

// ConversionGraph is the neo4j adapter behind the engine's path queries and
// learning feedback. Nodes are (:Concept) sharing their id with the
// relational concept_node row; edges carry per-hop conversion metadata.
type ConversionGraph struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewConversionGraph(client *neo4jdb.Client, log *logger.Logger) *ConversionGraph {
	return &ConversionGraph{
		client: client,
		log:    log.With("store", "ConversionGraph"),
	}
}

func (g *ConversionGraph) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return g.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: g.client.Database,
	})
}

// InitSchema creates the uniqueness constraint and platform index. Best
// effort: restricted users may not hold schema privileges, so failures are
// logged and startup continues.
func (g *ConversionGraph) InitSchema(ctx context.Context) {
	if g == nil || g.client == nil || g.client.Driver == nil {
		return
	}
	session := g.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	statements := []string{
		`CREATE CONSTRAINT concept_id_unique IF NOT EXISTS FOR (c:Concept) REQUIRE c.id IS UNIQUE`,
		`CREATE INDEX concept_platform_idx IF NOT EXISTS FOR (c:Concept) ON (c.platform)`,
		`CREATE INDEX concept_name_idx IF NOT EXISTS FOR (c:Concept) ON (c.name)`,
	}
	for _, stmt := range statements {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			g.log.Warn("neo4j schema init failed (continuing)", "error", err)
			continue
		}
		_, _ = res.Consume(ctx)
	}
}
