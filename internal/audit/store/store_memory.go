package store

import (
	"context"
	"sync"

	"vendorgate/internal/audit/models"
	"vendorgate/pkg/platform/sentinel"
)

// MemoryStore is an in-memory audit report store for tests and Postgres-free
// development runs.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string][]models.Report
}

// NewMemory constructs an empty in-memory audit report store.
func NewMemory() *MemoryStore {
	return &MemoryStore{reports: make(map[string][]models.Report)}
}

func (s *MemoryStore) Save(_ context.Context, report models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[report.Identity] = append(s.reports[report.Identity], report)
	return nil
}

func (s *MemoryStore) Latest(_ context.Context, identity string) (models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := s.reports[identity]
	if len(reports) == 0 {
		return models.Report{}, sentinel.ErrNotFound
	}
	latest := reports[0]
	for _, r := range reports[1:] {
		if r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	return latest, nil
}
