//go:build integration

package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"vendorgate/internal/identity"
	dErrors "vendorgate/pkg/domain-errors"
	"vendorgate/pkg/testutil/containers"
)

type PostgresProviderSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	provider *identity.PostgresProvider
}

func TestPostgresProviderSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresProviderSuite))
}

func (s *PostgresProviderSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.provider = identity.NewPostgres(s.postgres.DB)
}

func (s *PostgresProviderSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background()))
}

func (s *PostgresProviderSuite) TestRegisterAndAuthenticate() {
	ctx := context.Background()

	hash, err := identity.HashPassword("dana@acme.example", "correct-horse")
	s.Require().NoError(err)

	userID, err := s.provider.Register(ctx, "dana@acme.example", hash)
	s.Require().NoError(err)
	s.Require().False(userID.IsNil())

	got, err := s.provider.Authenticate(ctx, "dana@acme.example", "correct-horse")
	s.Require().NoError(err)
	s.Equal(userID, got)

	_, err = s.provider.Authenticate(ctx, "dana@acme.example", "wrong-horse")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.provider.Authenticate(ctx, "nobody@acme.example", "correct-horse")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *PostgresProviderSuite) TestDuplicateEmailConflicts() {
	ctx := context.Background()

	hash, err := identity.HashPassword("dana@acme.example", "correct-horse")
	s.Require().NoError(err)

	_, err = s.provider.Register(ctx, "dana@acme.example", hash)
	s.Require().NoError(err)

	_, err = s.provider.Register(ctx, "dana@acme.example", hash)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}
