//go:build integration

package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vendorgate/internal/account/models"
	"vendorgate/internal/account/store/users"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/platform/sentinel"
	"vendorgate/pkg/testutil/containers"
)

type PostgresUsersSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *users.PostgresStore
}

func TestPostgresUsersSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUsersSuite))
}

func (s *PostgresUsersSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = users.NewPostgres(s.postgres.DB)
}

func (s *PostgresUsersSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background()))
}

func (s *PostgresUsersSuite) profile(email string, accountType models.AccountType, approved bool, createdAt time.Time) models.UserProfile {
	return models.UserProfile{
		UserID:             id.NewUserID(),
		FirstName:          "Test",
		LastName:           "User",
		Email:              email,
		CompanyName:        "Testco",
		AccountType:        accountType,
		Status:             models.StatusActive,
		OnboardingComplete: true,
		AdminApproved:      approved,
		Uploads: models.UploadSummary{
			DocumentNames:  []string{"soc2.txt", "audit.txt"},
			DocumentCount:  2,
			LastUploadDate: createdAt,
		},
		CreatedAt:   createdAt,
		LastUpdated: createdAt,
	}
}

func (s *PostgresUsersSuite) TestSaveAndFind() {
	ctx := context.Background()
	p := s.profile("dana@acme.example", models.AccountVendor, true, time.Now().UTC().Truncate(time.Microsecond))

	s.Require().NoError(s.store.Save(ctx, p))

	byID, err := s.store.FindByID(ctx, p.UserID)
	s.Require().NoError(err)
	s.Equal(p.Email, byID.Email)
	s.Equal(p.Uploads.DocumentNames, byID.Uploads.DocumentNames)
	s.Equal(2, byID.Uploads.DocumentCount)
	s.True(byID.OnboardingComplete)

	byEmail, err := s.store.FindByEmail(ctx, "dana@acme.example")
	s.Require().NoError(err)
	s.Equal(p.UserID, byEmail.UserID)

	_, err = s.store.FindByID(ctx, id.NewUserID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresUsersSuite) TestSaveUpserts() {
	ctx := context.Background()
	p := s.profile("dana@acme.example", models.AccountVendor, true, time.Now().UTC().Truncate(time.Microsecond))

	s.Require().NoError(s.store.Save(ctx, p))
	p.CompanyName = "Acme Holdings"
	s.Require().NoError(s.store.Save(ctx, p))

	found, err := s.store.FindByID(ctx, p.UserID)
	s.Require().NoError(err)
	s.Equal("Acme Holdings", found.CompanyName)
}

func (s *PostgresUsersSuite) TestListByType() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	older := s.profile("v1@acme.example", models.AccountVendor, true, base.Add(-2*time.Hour))
	newer := s.profile("v2@acme.example", models.AccountVendor, true, base.Add(-time.Hour))
	unapproved := s.profile("v3@acme.example", models.AccountVendor, false, base)
	client := s.profile("c1@globex.example", models.AccountClient, true, base)

	for _, p := range []models.UserProfile{newer, older, unapproved, client} {
		s.Require().NoError(s.store.Save(ctx, p))
	}

	vendors, err := s.store.ListByType(ctx, models.AccountVendor, true)
	s.Require().NoError(err)
	s.Require().Len(vendors, 2)
	s.Equal(older.UserID, vendors[0].UserID)
	s.Equal(newer.UserID, vendors[1].UserID)

	all, err := s.store.ListByType(ctx, models.AccountVendor, false)
	s.Require().NoError(err)
	s.Len(all, 3)

	everyone, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Len(everyone, 4)
}
