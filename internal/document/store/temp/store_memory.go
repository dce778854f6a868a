package temp

import (
	"context"
	"sync"
	"time"

	"vendorgate/internal/document/models"
	id "vendorgate/pkg/domain"
)

type stagedSet struct {
	docs      map[string]models.Document
	order     []string
	expiresAt time.Time
}

// MemoryStore is an in-memory temporary document store for tests and
// Redis-free development runs. Expiry is enforced lazily on read.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*stagedSet
	clock    func() time.Time
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

// NewMemory constructs an empty in-memory temporary document store.
func NewMemory(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[id.SessionID]*stagedSet),
		clock:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MemoryStore) Add(_ context.Context, sessionID id.SessionID, doc models.Document, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sessions[sessionID]
	if !ok || s.clock().After(set.expiresAt) {
		set = &stagedSet{docs: make(map[string]models.Document)}
		s.sessions[sessionID] = set
	}
	// Re-uploading a filename overwrites in place and keeps its original
	// submission slot. Score aggregation folds documents in submission order,
	// so List must replay the order Add saw.
	if _, exists := set.docs[doc.Name]; !exists {
		set.order = append(set.order, doc.Name)
	}
	set.docs[doc.Name] = doc
	set.expiresAt = s.clock().Add(ttl)
	return nil
}

func (s *MemoryStore) List(_ context.Context, sessionID id.SessionID) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sessions[sessionID]
	if !ok || s.clock().After(set.expiresAt) {
		return nil, nil
	}
	docs := make([]models.Document, 0, len(set.order))
	for _, name := range set.order {
		docs = append(docs, set.docs[name])
	}
	return docs, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
