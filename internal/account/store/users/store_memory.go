package users

import (
	"context"
	"sort"
	"sync"

	"vendorgate/internal/account/models"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/platform/sentinel"
)

// MemoryStore is an in-memory user profile store for tests and database-free
// development runs.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[id.UserID]models.UserProfile
}

// NewMemory constructs an empty in-memory user store.
func NewMemory() *MemoryStore {
	return &MemoryStore{profiles: make(map[id.UserID]models.UserProfile)}
}

func (s *MemoryStore) Save(_ context.Context, profile models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.UserID] = profile
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, userID id.UserID) (models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return models.UserProfile{}, sentinel.ErrNotFound
	}
	return profile, nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, profile := range s.profiles {
		if profile.Email == email {
			return profile, nil
		}
	}
	return models.UserProfile{}, sentinel.ErrNotFound
}

func (s *MemoryStore) ListByType(_ context.Context, accountType models.AccountType, approvedOnly bool) ([]models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var profiles []models.UserProfile
	for _, profile := range s.profiles {
		if profile.AccountType != accountType {
			continue
		}
		if approvedOnly && !profile.AdminApproved {
			continue
		}
		profiles = append(profiles, profile)
	}
	sortByCreation(profiles)
	return profiles, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]models.UserProfile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		profiles = append(profiles, profile)
	}
	sortByCreation(profiles)
	return profiles, nil
}

func sortByCreation(profiles []models.UserProfile) {
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})
}
