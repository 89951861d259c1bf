package fanout

import (
	"context"

	"relentless-fetch/internal/models"
)

// Fetcher performs a single GET and returns the full body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Recorder observes terminal outcomes (e.g. Kafka publisher, Neo4j graph).
// Errors are logged and never fail the run.
type Recorder interface {
	Record(ctx context.Context, outcome models.FetchOutcome) error
}
