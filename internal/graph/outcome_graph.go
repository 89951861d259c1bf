package graph

import (
	"context"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"relentless-fetch/internal/models"
)

// OutcomeGraph records each fetch as (:Run)-[:FETCHED]->(:Page).
type OutcomeGraph struct {
	driver DriverSessioner
}

// NewOutcomeGraph wraps a driver.
func NewOutcomeGraph(driver DriverSessioner) *OutcomeGraph {
	return &OutcomeGraph{driver: driver}
}

// Close closes the underlying driver.
func (g *OutcomeGraph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

// Record writes one outcome. Outcomes without a URL (blank input lines) are skipped.
func (g *OutcomeGraph) Record(ctx context.Context, outcome models.FetchOutcome) error {
	if outcome.URL == "" {
		return nil
	}
	query, params := BuildOutcomeQuery(outcome)
	return g.runWrite(ctx, query, params)
}

func (g *OutcomeGraph) runWrite(ctx context.Context, query string, params map[string]any) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer func() {
		if err := session.Close(ctx); err != nil {
			log.Printf("neo4j session close error: %v", err)
		}
	}()

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, query, params)
		return nil, err
	})
	return err
}

// BuildOutcomeQuery returns the MERGE statement and parameters for an outcome.
func BuildOutcomeQuery(outcome models.FetchOutcome) (string, map[string]any) {
	query := "MERGE (r:Run {id: $run_id}) " +
		"MERGE (p:Page {url: $url}) " +
		"MERGE (r)-[f:FETCHED {index: $index}]->(p) " +
		"SET f.status = $status, f.body_bytes = $body_bytes, " +
		"f.duration_ms = $duration_ms, f.error = $error"
	var errText any
	if outcome.Err != nil {
		errText = outcome.Err.Error()
	}
	params := map[string]any{
		"run_id":      outcome.RunID,
		"url":         outcome.URL,
		"index":       int64(outcome.Index),
		"status":      string(outcome.Status),
		"body_bytes":  int64(len(outcome.Body)),
		"duration_ms": outcome.Duration.Milliseconds(),
		"error":       errText,
	}
	return query, params
}
