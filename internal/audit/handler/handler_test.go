package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vendorgate/internal/audit/handler/mocks"
	"vendorgate/internal/audit/models"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/platform/sentinel"
	"vendorgate/pkg/testutil"
)

type AuditHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestAuditHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuditHandlerSuite))
}

func (s *AuditHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, logger)

	s.router = chi.NewRouter()
	h.RegisterPublic(s.router)
	h.RegisterProtected(s.router)
}

func (s *AuditHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func testReport(identity string) models.Report {
	return models.Report{
		Identity:  identity,
		Timestamp: time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
		Status:    models.StatusPassed,
		Summary:   models.Summary{ExecutiveSummary: "All clear."},
	}
}

func (s *AuditHandlerSuite) TestHandleStaged() {
	sessionID := id.NewSessionID()
	path := "/signup/" + sessionID.String() + "/report"

	s.Run("staged report is returned", func() {
		s.service.EXPECT().Staged(gomock.Any(), sessionID).Return(testReport(sessionID.String()), nil)

		req := testutil.NewRequest(s.T(), http.MethodGet, path)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[models.Report](s.T(), rr)
		s.Equal(sessionID.String(), resp.Identity)
		s.Equal(models.StatusPassed, resp.Status)
	})

	s.Run("missing report maps to not found", func() {
		s.service.EXPECT().Staged(gomock.Any(), sessionID).Return(models.Report{}, sentinel.ErrNotFound)

		req := testutil.NewRequest(s.T(), http.MethodGet, path)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("malformed session id is a bad request", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/signup/nope/report")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *AuditHandlerSuite) TestHandleLatest() {
	userID := id.NewUserID()

	s.Run("latest durable report is returned", func() {
		s.service.EXPECT().Latest(gomock.Any(), userID).Return(testReport(userID.String()), nil)

		req := testutil.WithAuth(testutil.NewRequest(s.T(), http.MethodGet, "/reports/latest"), userID.String(), "vendors")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[models.Report](s.T(), rr)
		s.Equal(userID.String(), resp.Identity)
	})

	s.Run("no reports yet maps to not found", func() {
		s.service.EXPECT().Latest(gomock.Any(), userID).Return(models.Report{}, sentinel.ErrNotFound)

		req := testutil.WithAuth(testutil.NewRequest(s.T(), http.MethodGet, "/reports/latest"), userID.String(), "vendors")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("missing auth context is unauthorized", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/reports/latest")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})
}
