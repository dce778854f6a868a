// Package staged holds audit reports for signup sessions that have not been
// activated yet. Entries expire with the session.
package staged

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vendorgate/internal/audit/models"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/platform/sentinel"
)

const stagedKeyPrefix = "auditresult:"

// RedisStore keeps staged audit reports in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed staged report store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, sessionID id.SessionID, report models.Report, ttl time.Duration) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal staged report: %w", err)
	}
	if err := s.client.Set(ctx, stagedKeyPrefix+sessionID.String(), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save staged report: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID id.SessionID) (models.Report, error) {
	raw, err := s.client.Get(ctx, stagedKeyPrefix+sessionID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return models.Report{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Report{}, fmt.Errorf("load staged report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return models.Report{}, fmt.Errorf("decode staged report: %w", err)
	}
	return report, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	if err := s.client.Del(ctx, stagedKeyPrefix+sessionID.String()).Err(); err != nil {
		return fmt.Errorf("delete staged report: %w", err)
	}
	return nil
}
