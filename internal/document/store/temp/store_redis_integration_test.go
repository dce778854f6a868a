//go:build integration

package temp_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vendorgate/internal/document/models"
	"vendorgate/internal/document/store/temp"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/testutil/containers"
)

type RedisTempSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *temp.RedisStore
}

func TestRedisTempSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisTempSuite))
}

func (s *RedisTempSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = temp.NewRedis(s.redis.Client)
}

func (s *RedisTempSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisTempSuite) doc(name string, category models.Category) models.Document {
	return models.Document{
		Category:    category,
		Name:        name,
		ContentType: "text/plain",
		StorageRef:  "temp/session/" + name,
		UploadedAt:  time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (s *RedisTempSuite) TestListPreservesSubmissionOrder() {
	ctx := context.Background()
	sessionID := id.NewSessionID()

	names := []string{"doc-0.txt", "doc-1.txt", "doc-2.txt", "doc-3.txt",
		"doc-4.txt", "doc-5.txt", "doc-6.txt", "doc-7.txt"}
	for _, name := range names {
		s.Require().NoError(s.store.Add(ctx, sessionID, s.doc(name, models.CategoryOther), time.Minute))
	}

	// Score aggregation folds documents in submission order; hash-field order
	// must never leak through List.
	for i := 0; i < 20; i++ {
		docs, err := s.store.List(ctx, sessionID)
		s.Require().NoError(err)
		s.Require().Len(docs, len(names))
		for j, d := range docs {
			s.Equal(names[j], d.Name)
		}
	}
}

func (s *RedisTempSuite) TestOverwriteKeepsSubmissionSlot() {
	ctx := context.Background()
	sessionID := id.NewSessionID()

	s.Require().NoError(s.store.Add(ctx, sessionID, s.doc("soc2.txt", models.CategoryCybersecurity), time.Minute))
	s.Require().NoError(s.store.Add(ctx, sessionID, s.doc("audit.txt", models.CategoryFinancial), time.Minute))
	s.Require().NoError(s.store.Add(ctx, sessionID, s.doc("soc2.txt", models.CategoryRisk), time.Minute))

	docs, err := s.store.List(ctx, sessionID)
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	s.Equal("soc2.txt", docs[0].Name)
	s.Equal(models.CategoryRisk, docs[0].Category)
	s.Equal("audit.txt", docs[1].Name)
}

func (s *RedisTempSuite) TestExpiry() {
	ctx := context.Background()
	sessionID := id.NewSessionID()

	s.Require().NoError(s.store.Add(ctx, sessionID, s.doc("soc2.txt", models.CategoryCybersecurity), 100*time.Millisecond))

	time.Sleep(200 * time.Millisecond)

	docs, err := s.store.List(ctx, sessionID)
	s.Require().NoError(err)
	s.Empty(docs)
}

func (s *RedisTempSuite) TestDelete() {
	ctx := context.Background()
	sessionID := id.NewSessionID()

	s.Require().NoError(s.store.Add(ctx, sessionID, s.doc("soc2.txt", models.CategoryCybersecurity), time.Minute))
	s.Require().NoError(s.store.Delete(ctx, sessionID))

	docs, err := s.store.List(ctx, sessionID)
	s.Require().NoError(err)
	s.Empty(docs)
}
