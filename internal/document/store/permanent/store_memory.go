package permanent

import (
	"context"
	"sync"

	"vendorgate/internal/document/models"
	id "vendorgate/pkg/domain"
)

// MemoryStore is an in-memory verified document store for tests and
// Postgres-free development runs.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[id.UserID]map[string]models.Document
}

// NewMemory constructs an empty in-memory verified document store.
func NewMemory() *MemoryStore {
	return &MemoryStore{docs: make(map[id.UserID]map[string]models.Document)}
}

func (s *MemoryStore) Add(_ context.Context, userID id.UserID, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byName, ok := s.docs[userID]
	if !ok {
		byName = make(map[string]models.Document)
		s.docs[userID] = byName
	}
	byName[doc.Name] = doc
	return nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byName := s.docs[userID]
	docs := make([]models.Document, 0, len(byName))
	for _, doc := range byName {
		docs = append(docs, doc)
	}
	return docs, nil
}
