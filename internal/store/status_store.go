package store

import (
	"context"

	"relentless-fetch/internal/models"
)

// StatusStore persists run status.
type StatusStore interface {
	SetStatus(ctx context.Context, status models.RunStatus) error
	GetStatus(ctx context.Context, runID string) (models.RunStatus, bool, error)
}
