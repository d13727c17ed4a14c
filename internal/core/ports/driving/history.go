package driving

import (
	"context"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

// HistoryService records and queries finished runs.
type HistoryService interface {
	// Record stores a finished run, assigning an ID when empty.
	Record(ctx context.Context, record domain.RunRecord) (string, error)

	// Recent returns the most recent runs first. A limit of zero or less
	// uses the configured limit.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Get retrieves a run by ID or unique ID prefix.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)

	// Enabled reports whether runs are recorded.
	Enabled() bool
}
