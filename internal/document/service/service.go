// Package service implements document intake: staging uploads into the
// temporary keyspace and promoting them to permanent storage after a
// compliance pass.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vendorgate/internal/blob"
	"vendorgate/internal/document/models"
	"vendorgate/internal/platform/metrics"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/requestcontext"
)

// TempStore is the staging keyspace for unverified uploads.
type TempStore interface {
	Add(ctx context.Context, sessionID id.SessionID, doc models.Document, ttl time.Duration) error
	List(ctx context.Context, sessionID id.SessionID) ([]models.Document, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
}

// PermanentStore is the durable keyspace for verified documents.
type PermanentStore interface {
	Add(ctx context.Context, userID id.UserID, doc models.Document) error
	ListByUser(ctx context.Context, userID id.UserID) ([]models.Document, error)
}

// Upload is one file presented to intake. Category is the caller-supplied tag;
// when empty the filename heuristic supplies a default.
type Upload struct {
	Name        string
	Category    string
	ContentType string
	Data        []byte
}

// IntakeService stages uploads and promotes them once compliance passes.
type IntakeService struct {
	blobs      blob.Store
	temp       TempStore
	permanent  PermanentStore
	logger     *slog.Logger
	metrics    *metrics.Metrics
	stagingTTL time.Duration
}

// Option configures an IntakeService.
type Option func(*IntakeService)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *IntakeService) { s.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *IntakeService) { s.metrics = m }
}

// New constructs an IntakeService.
func New(blobs blob.Store, temp TempStore, permanent PermanentStore, stagingTTL time.Duration, opts ...Option) (*IntakeService, error) {
	if blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if temp == nil {
		return nil, fmt.Errorf("temp document store is required")
	}
	if permanent == nil {
		return nil, fmt.Errorf("permanent document store is required")
	}

	s := &IntakeService{
		blobs:      blobs,
		temp:       temp,
		permanent:  permanent,
		logger:     slog.Default(),
		stagingTTL: stagingTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// StoreTemporary stages each upload: bytes to blob storage under
// temp/<session>/<name>, one metadata record per file. Intake is best-effort;
// a failure partway leaves earlier files staged and reports the error for the
// remainder. Files sharing a name within one session overwrite each other.
func (s *IntakeService) StoreTemporary(ctx context.Context, sessionID id.SessionID, uploads []Upload) ([]models.Document, error) {
	now := requestcontext.Now(ctx)
	staged := make([]models.Document, 0, len(uploads))

	for _, up := range uploads {
		category := models.ParseCategory(up.Category)
		if up.Category == "" {
			category = models.ClassifyFilename(up.Name)
		}

		path := fmt.Sprintf("temp/%s/%s", sessionID, up.Name)
		ref, err := s.blobs.Write(ctx, path, up.Data)
		if err != nil {
			return staged, fmt.Errorf("stage %s: %w", up.Name, err)
		}

		doc := models.Document{
			Category:    category,
			StorageRef:  ref,
			Name:        up.Name,
			ContentType: up.ContentType,
			UploadedAt:  now,
		}
		if err := s.temp.Add(ctx, sessionID, doc, s.stagingTTL); err != nil {
			return staged, fmt.Errorf("record %s: %w", up.Name, err)
		}

		staged = append(staged, doc)
		if s.metrics != nil {
			s.metrics.DocumentsStaged.Inc()
		}
	}

	s.logger.InfoContext(ctx, "documents staged",
		"session_id", sessionID.String(),
		"count", len(staged),
	)
	return staged, nil
}

// ListTemporary returns the staged document set for a session.
func (s *IntakeService) ListTemporary(ctx context.Context, sessionID id.SessionID) ([]models.Document, error) {
	return s.temp.List(ctx, sessionID)
}

// DiscardTemporary clears a session's staged documents, metadata and bytes
// both. Used when a rejected applicant retries with a fresh document set.
func (s *IntakeService) DiscardTemporary(ctx context.Context, sessionID id.SessionID) error {
	if err := s.temp.Delete(ctx, sessionID); err != nil {
		return err
	}
	return s.blobs.RemoveAll(ctx, "temp/"+sessionID.String())
}

// Promote copies every staged document into the permanent keyspace under the
// new durable user, relocating the bytes out of staging so the sweeper never
// reaps a verified document.
func (s *IntakeService) Promote(ctx context.Context, sessionID id.SessionID, userID id.UserID) ([]models.Document, error) {
	docs, err := s.temp.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load staged documents: %w", err)
	}

	promoted := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		ref, err := s.blobs.Move(ctx, doc.StorageRef, fmt.Sprintf("uploads/%s/%s", userID, doc.Name))
		if err != nil {
			return promoted, fmt.Errorf("relocate %s: %w", doc.Name, err)
		}
		doc.StorageRef = ref

		if err := s.permanent.Add(ctx, userID, doc); err != nil {
			return promoted, fmt.Errorf("promote %s: %w", doc.Name, err)
		}
		promoted = append(promoted, doc)
		if s.metrics != nil {
			s.metrics.DocumentsPromoted.Inc()
		}
	}

	if err := s.temp.Delete(ctx, sessionID); err != nil {
		return promoted, fmt.Errorf("clear staging: %w", err)
	}

	s.logger.InfoContext(ctx, "documents promoted",
		"session_id", sessionID.String(),
		"user_id", userID.String(),
		"count", len(promoted),
	)
	return promoted, nil
}

// ReadContent loads the raw bytes for a staged or verified document.
func (s *IntakeService) ReadContent(ctx context.Context, doc models.Document) ([]byte, error) {
	return s.blobs.Read(ctx, doc.StorageRef)
}
