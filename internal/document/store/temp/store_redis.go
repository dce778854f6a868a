// Package temp implements the staging keyspace for unverified uploads. Records
// expire with the signup session; compliance passing promotes them out before
// the TTL fires.
package temp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"vendorgate/internal/document/models"
	id "vendorgate/pkg/domain"
)

const sessionKeyPrefix = "tempdocs:"

// stagedDocument is the stored payload: the document plus its submission
// sequence. Score aggregation folds documents in submission order, so List
// must replay the order Add saw rather than hash-field order.
type stagedDocument struct {
	models.Document
	Sequence int64 `json:"sequence"`
}

// RedisStore keeps temporary document metadata in a Redis hash per session,
// one field per filename. Re-uploading a filename overwrites the field and
// keeps its original submission slot, which matches blob-side last-write-wins.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed temporary document store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Add(ctx context.Context, sessionID id.SessionID, doc models.Document, ttl time.Duration) error {
	key := sessionKeyPrefix + sessionID.String()
	seqKey := key + ":seq"

	var seq int64
	raw, err := s.client.HGet(ctx, key, doc.Name).Result()
	switch {
	case err == nil:
		var existing stagedDocument
		if err := json.Unmarshal([]byte(raw), &existing); err != nil {
			return fmt.Errorf("decode temp document: %w", err)
		}
		seq = existing.Sequence
	case errors.Is(err, redis.Nil):
		seq, err = s.client.Incr(ctx, seqKey).Result()
		if err != nil {
			return fmt.Errorf("sequence temp document: %w", err)
		}
	default:
		return fmt.Errorf("stage temp document: %w", err)
	}

	payload, err := json.Marshal(stagedDocument{Document: doc, Sequence: seq})
	if err != nil {
		return fmt.Errorf("marshal temp document: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, doc.Name, payload)
	pipe.Expire(ctx, key, ttl)
	pipe.Expire(ctx, seqKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store temp document: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, sessionID id.SessionID) ([]models.Document, error) {
	fields, err := s.client.HGetAll(ctx, sessionKeyPrefix+sessionID.String()).Result()
	if err != nil {
		return nil, fmt.Errorf("list temp documents: %w", err)
	}

	staged := make([]stagedDocument, 0, len(fields))
	for _, raw := range fields {
		var doc stagedDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("decode temp document: %w", err)
		}
		staged = append(staged, doc)
	}
	sort.Slice(staged, func(i, j int) bool { return staged[i].Sequence < staged[j].Sequence })

	docs := make([]models.Document, 0, len(staged))
	for _, doc := range staged {
		docs = append(docs, doc.Document)
	}
	return docs, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	key := sessionKeyPrefix + sessionID.String()
	if err := s.client.Del(ctx, key, key+":seq").Err(); err != nil {
		return fmt.Errorf("delete temp documents: %w", err)
	}
	return nil
}
