package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu   sync.RWMutex
	runs map[string]domain.RunRecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		runs: make(map[string]domain.RunRecord),
	}
}

// Save stores or replaces a run.
func (s *HistoryStore) Save(_ context.Context, record domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[record.ID] = record
	return nil
}

// Get retrieves a run by ID or unique ID prefix.
func (s *HistoryStore) Get(_ context.Context, id string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if record, ok := s.runs[id]; ok {
		return &record, nil
	}
	var match *domain.RunRecord
	for key, record := range s.runs {
		if !strings.HasPrefix(key, id) {
			continue
		}
		if match != nil {
			return nil, domain.ErrNotFound
		}
		r := record
		match = &r
	}
	if match == nil {
		return nil, domain.ErrNotFound
	}
	return match, nil
}

// List returns the most recent runs first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := s.sorted()
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Prune keeps the newest keep runs.
func (s *HistoryStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := s.sorted()
	if keep < 0 || len(sorted) <= keep {
		return nil
	}
	for _, record := range sorted[keep:] {
		delete(s.runs, record.ID)
	}
	return nil
}

// sorted returns runs newest first (caller must hold lock).
func (s *HistoryStore) sorted() []domain.RunRecord {
	result := make([]domain.RunRecord, 0, len(s.runs))
	for _, record := range s.runs {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FinishedAt.Equal(result[j].FinishedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].FinishedAt.After(result[j].FinishedAt)
	})
	return result
}
