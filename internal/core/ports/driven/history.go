package driven

import (
	"context"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

// HistoryStore persists finished runs.
type HistoryStore interface {
	// Save stores a run. Saving an existing ID replaces it.
	Save(ctx context.Context, record domain.RunRecord) error

	// Get retrieves a run by ID. IDs may be abbreviated to a unique prefix.
	// Returns domain.ErrNotFound when no run matches.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)

	// List returns the most recent runs first, at most limit of them.
	// A limit of zero or less returns every run.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Prune keeps the newest keep runs and deletes the rest.
	Prune(ctx context.Context, keep int) error
}
