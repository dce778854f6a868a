package blob

import (
	"context"
	"strings"
	"sync"
	"time"

	"vendorgate/pkg/platform/sentinel"
)

type object struct {
	data      []byte
	writtenAt time.Time
}

// MemoryStore is an in-memory blob store for tests and Redis/Postgres-free
// development runs.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]object
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

// NewMemory constructs an empty in-memory blob store.
func NewMemory(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		objects: make(map[string]object),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MemoryStore) Write(_ context.Context, path string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[path] = object{data: buf, writtenAt: s.clock()}
	return path, nil
}

func (s *MemoryStore) Read(_ context.Context, path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[path]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	buf := make([]byte, len(obj.data))
	copy(buf, obj.data)
	return buf, nil
}

func (s *MemoryStore) Move(_ context.Context, fromPath, toPath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[fromPath]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	delete(s.objects, fromPath)
	s.objects[toPath] = obj
	return toPath, nil
}

func (s *MemoryStore) RemoveAll(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for path := range s.objects {
		if strings.HasPrefix(path, prefix) {
			delete(s.objects, path)
		}
	}
	return nil
}

func (s *MemoryStore) StalePrefixes(_ context.Context, root string, cutoff time.Time) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	newest := make(map[string]time.Time)
	for path, obj := range s.objects {
		rest, ok := strings.CutPrefix(path, root+"/")
		if !ok {
			continue
		}
		first, _, ok := strings.Cut(rest, "/")
		if !ok {
			continue
		}
		prefix := root + "/" + first
		if obj.writtenAt.After(newest[prefix]) {
			newest[prefix] = obj.writtenAt
		}
	}

	var stale []string
	for prefix, at := range newest {
		if at.Before(cutoff) {
			stale = append(stale, prefix)
		}
	}
	return stale, nil
}
