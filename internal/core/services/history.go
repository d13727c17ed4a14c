package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records finished runs in a history store.
type HistoryService struct {
	store    driven.HistoryStore
	settings domain.HistorySettings
}

// NewHistoryService creates a history service. A nil store disables history.
func NewHistoryService(store driven.HistoryStore, settings domain.HistorySettings) *HistoryService {
	return &HistoryService{
		store:    store,
		settings: settings,
	}
}

// Enabled reports whether runs are recorded.
func (s *HistoryService) Enabled() bool {
	return s.store != nil && s.settings.Enabled
}

// Record stores a finished run and prunes old ones.
func (s *HistoryService) Record(ctx context.Context, record domain.RunRecord) (string, error) {
	if !s.Enabled() {
		return "", nil
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := s.store.Save(ctx, record); err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	if s.settings.Keep > 0 {
		if err := s.store.Prune(ctx, s.settings.Keep); err != nil {
			return record.ID, fmt.Errorf("prune history: %w", err)
		}
	}
	return record.ID, nil
}

// Recent returns the most recent runs first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = s.settings.Limit
	}
	return s.store.List(ctx, limit)
}

// Get retrieves a run by ID or unique ID prefix.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	if id == "" {
		return nil, fmt.Errorf("%w: empty run id", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}
