//go:build integration

package pending_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vendorgate/internal/account/models"
	"vendorgate/internal/account/store/pending"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/platform/sentinel"
	"vendorgate/pkg/testutil/containers"
)

type RedisPendingSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *pending.RedisStore
}

func TestRedisPendingSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisPendingSuite))
}

func (s *RedisPendingSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = pending.NewRedis(s.redis.Client)
}

func (s *RedisPendingSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisPendingSuite) signup() models.PendingSignup {
	return models.PendingSignup{
		SessionID:    id.NewSessionID(),
		FirstName:    "Dana",
		LastName:     "Reyes",
		Email:        "dana@acme.example",
		CompanyName:  "Acme Corp",
		AccountType:  models.AccountVendor,
		PasswordHash: []byte("$2a$10$notarealhash"),
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (s *RedisPendingSuite) TestSaveAndFind() {
	ctx := context.Background()
	signup := s.signup()

	s.Require().NoError(s.store.Save(ctx, signup, time.Minute))

	found, err := s.store.Find(ctx, signup.SessionID)
	s.Require().NoError(err)
	s.Equal(signup, found)
}

func (s *RedisPendingSuite) TestFindMissing() {
	_, err := s.store.Find(context.Background(), id.NewSessionID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisPendingSuite) TestExpiry() {
	ctx := context.Background()
	signup := s.signup()

	s.Require().NoError(s.store.Save(ctx, signup, 100*time.Millisecond))

	time.Sleep(200 * time.Millisecond)

	_, err := s.store.Find(ctx, signup.SessionID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisPendingSuite) TestDelete() {
	ctx := context.Background()
	signup := s.signup()

	s.Require().NoError(s.store.Save(ctx, signup, time.Minute))
	s.Require().NoError(s.store.Delete(ctx, signup.SessionID))

	_, err := s.store.Find(ctx, signup.SessionID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
