// Package pending stages signup records until compliance passes. Entries
// carry a TTL so abandoned signups expire on their own.
package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vendorgate/internal/account/models"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/platform/sentinel"
)

const pendingKeyPrefix = "pendingsignup:"

// RedisStore keeps pending signups in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed pending signup store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, signup models.PendingSignup, ttl time.Duration) error {
	payload, err := json.Marshal(signup)
	if err != nil {
		return fmt.Errorf("marshal pending signup: %w", err)
	}
	if err := s.client.Set(ctx, pendingKeyPrefix+signup.SessionID.String(), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save pending signup: %w", err)
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, sessionID id.SessionID) (models.PendingSignup, error) {
	raw, err := s.client.Get(ctx, pendingKeyPrefix+sessionID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return models.PendingSignup{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.PendingSignup{}, fmt.Errorf("load pending signup: %w", err)
	}

	var signup models.PendingSignup
	if err := json.Unmarshal([]byte(raw), &signup); err != nil {
		return models.PendingSignup{}, fmt.Errorf("decode pending signup: %w", err)
	}
	return signup, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	if err := s.client.Del(ctx, pendingKeyPrefix+sessionID.String()).Err(); err != nil {
		return fmt.Errorf("delete pending signup: %w", err)
	}
	return nil
}
