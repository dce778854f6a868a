package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vendorgate/internal/blob"
	"vendorgate/internal/document/models"
	"vendorgate/internal/document/store/permanent"
	"vendorgate/internal/document/store/temp"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/requestcontext"
)

type IntakeServiceSuite struct {
	suite.Suite
	blobs *blob.MemoryStore
	temp  *temp.MemoryStore
	perm  *permanent.MemoryStore
	svc   *IntakeService
	now   time.Time
	ctx   context.Context
}

func TestIntakeServiceSuite(t *testing.T) {
	suite.Run(t, new(IntakeServiceSuite))
}

func (s *IntakeServiceSuite) SetupTest() {
	s.now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)

	s.blobs = blob.NewMemory()
	s.temp = temp.NewMemory()
	s.perm = permanent.NewMemory()

	var err error
	s.svc, err = New(s.blobs, s.temp, s.perm, 24*time.Hour)
	s.Require().NoError(err)
}

func (s *IntakeServiceSuite) TestStoreTemporary() {
	sessionID := id.NewSessionID()

	s.Run("stages bytes and metadata under the session", func() {
		staged, err := s.svc.StoreTemporary(s.ctx, sessionID, []Upload{
			{Name: "soc2.txt", Category: "cybersecurity", ContentType: "text/plain", Data: []byte("report")},
		})
		s.Require().NoError(err)
		s.Require().Len(staged, 1)

		s.Equal(models.CategoryCybersecurity, staged[0].Category)
		s.Equal(s.now, staged[0].UploadedAt)

		content, err := s.svc.ReadContent(s.ctx, staged[0])
		s.Require().NoError(err)
		s.Equal([]byte("report"), content)

		listed, err := s.svc.ListTemporary(s.ctx, sessionID)
		s.Require().NoError(err)
		s.Len(listed, 1)
	})

	s.Run("explicit category tag beats the filename heuristic", func() {
		staged, err := s.svc.StoreTemporary(s.ctx, sessionID, []Upload{
			{Name: "security-overview.txt", Category: "financial", ContentType: "text/plain", Data: []byte("x")},
		})
		s.Require().NoError(err)
		s.Equal(models.CategoryFinancial, staged[0].Category)
	})

	s.Run("missing tag falls back to the filename heuristic", func() {
		staged, err := s.svc.StoreTemporary(s.ctx, sessionID, []Upload{
			{Name: "background-check.txt", ContentType: "text/plain", Data: []byte("x")},
		})
		s.Require().NoError(err)
		s.Equal(models.CategoryCriminal, staged[0].Category)
	})

	s.Run("same name within a session overwrites", func() {
		_, err := s.svc.StoreTemporary(s.ctx, sessionID, []Upload{
			{Name: "dup.txt", Category: "risk", ContentType: "text/plain", Data: []byte("first")},
		})
		s.Require().NoError(err)
		staged, err := s.svc.StoreTemporary(s.ctx, sessionID, []Upload{
			{Name: "dup.txt", Category: "risk", ContentType: "text/plain", Data: []byte("second")},
		})
		s.Require().NoError(err)

		content, err := s.svc.ReadContent(s.ctx, staged[0])
		s.Require().NoError(err)
		s.Equal([]byte("second"), content)
	})
}

func (s *IntakeServiceSuite) TestPromote() {
	sessionID := id.NewSessionID()
	userID := id.NewUserID()

	s.Run("relocates staged documents to the user and clears staging", func() {
		_, err := s.svc.StoreTemporary(s.ctx, sessionID, []Upload{
			{Name: "a.txt", Category: "risk", ContentType: "text/plain", Data: []byte("a")},
			{Name: "b.txt", Category: "financial", ContentType: "text/plain", Data: []byte("b")},
		})
		s.Require().NoError(err)

		promoted, err := s.svc.Promote(s.ctx, sessionID, userID)
		s.Require().NoError(err)
		s.Len(promoted, 2)

		for _, doc := range promoted {
			s.Contains(doc.StorageRef, "uploads/"+userID.String())
			content, err := s.svc.ReadContent(s.ctx, doc)
			s.Require().NoError(err)
			s.NotEmpty(content)
		}

		durable, err := s.perm.ListByUser(s.ctx, userID)
		s.Require().NoError(err)
		s.Len(durable, 2)

		stagedDocs, err := s.svc.ListTemporary(s.ctx, sessionID)
		s.Require().NoError(err)
		s.Empty(stagedDocs)
	})

	s.Run("promoting an empty session is a no-op", func() {
		promoted, err := s.svc.Promote(s.ctx, id.NewSessionID(), userID)
		s.Require().NoError(err)
		s.Empty(promoted)
	})
}

func (s *IntakeServiceSuite) TestDiscardTemporary() {
	sessionID := id.NewSessionID()

	staged, err := s.svc.StoreTemporary(s.ctx, sessionID, []Upload{
		{Name: "a.txt", Category: "risk", ContentType: "text/plain", Data: []byte("a")},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DiscardTemporary(s.ctx, sessionID))

	listed, err := s.svc.ListTemporary(s.ctx, sessionID)
	s.Require().NoError(err)
	s.Empty(listed)

	_, err = s.svc.ReadContent(s.ctx, staged[0])
	s.Error(err)
}
