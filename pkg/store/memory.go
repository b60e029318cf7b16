package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/causallab/dagcheck/pkg/check"
)

// MemoryStore is an in-memory report archive for development and testing.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// SaveReport archives a report in memory.
func (s *MemoryStore) SaveReport(ctx context.Context, rep *check.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rep.ScenarioID] = Record{
		ScenarioID: rep.ScenarioID,
		Report:     *rep,
		SavedAt:    time.Now().UTC(),
	}
	return nil
}

// GetReport retrieves an archived report.
func (s *MemoryStore) GetReport(ctx context.Context, scenarioID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[scenarioID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// ListReports returns archived records, newest first.
func (s *MemoryStore) ListReports(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].SavedAt.After(records[j].SavedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
