//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vendorgate/internal/audit/models"
	"vendorgate/internal/audit/store"
	"vendorgate/pkg/platform/sentinel"
	"vendorgate/pkg/testutil/containers"
)

type PostgresReportsSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresReportsSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresReportsSuite))
}

func (s *PostgresReportsSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresReportsSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background()))
}

func report(identity string, at time.Time, status models.Status) models.Report {
	return models.Report{
		Identity:  identity,
		Timestamp: at,
		Status:    status,
		Summary:   models.Summary{ExecutiveSummary: "summary for " + identity},
	}
}

func (s *PostgresReportsSuite) TestLatestPicksNewestRun() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	s.Require().NoError(s.store.Save(ctx, report("user-1", base.Add(-time.Hour), models.StatusFailed)))
	s.Require().NoError(s.store.Save(ctx, report("user-1", base, models.StatusPassed)))
	s.Require().NoError(s.store.Save(ctx, report("user-2", base.Add(time.Hour), models.StatusPassed)))

	latest, err := s.store.Latest(ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(models.StatusPassed, latest.Status)
	s.Equal(base, latest.Timestamp)
}

func (s *PostgresReportsSuite) TestSaveIsIdempotentPerRun() {
	ctx := context.Background()
	at := time.Now().UTC().Truncate(time.Millisecond)

	first := report("user-1", at, models.StatusFailed)
	s.Require().NoError(s.store.Save(ctx, first))

	// Re-saving the same run overwrites rather than duplicating the row.
	first.Status = models.StatusPassed
	s.Require().NoError(s.store.Save(ctx, first))

	latest, err := s.store.Latest(ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(models.StatusPassed, latest.Status)
}

func (s *PostgresReportsSuite) TestLatestMissing() {
	_, err := s.store.Latest(context.Background(), "nobody")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
