package staged

import (
	"context"
	"sync"
	"time"

	"vendorgate/internal/audit/models"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/platform/sentinel"
)

type entry struct {
	report    models.Report
	expiresAt time.Time
}

// MemoryStore is an in-memory staged report store for tests and Redis-free
// development runs. Expiry is enforced lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[id.SessionID]entry
	clock   func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewMemory constructs an empty in-memory staged report store.
func NewMemory(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[id.SessionID]entry),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MemoryStore) Save(_ context.Context, sessionID id.SessionID, report models.Report, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = entry{report: report, expiresAt: s.clock().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID id.SessionID) (models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[sessionID]
	if !ok || s.clock().After(e.expiresAt) {
		return models.Report{}, sentinel.ErrNotFound
	}
	return e.report, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}
