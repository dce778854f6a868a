// Package handler wires the document staging endpoints used during signup.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendorgate/internal/document/models"
	"vendorgate/internal/document/service"
	id "vendorgate/pkg/domain"
	dErrors "vendorgate/pkg/domain-errors"
	"vendorgate/pkg/platform/httputil"
	"vendorgate/pkg/requestcontext"
)

// maxUploadBytes caps one multipart upload request.
const maxUploadBytes = 32 << 20

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the intake operations the handler needs.
type Service interface {
	StoreTemporary(ctx context.Context, sessionID id.SessionID, uploads []service.Upload) ([]models.Document, error)
	ListTemporary(ctx context.Context, sessionID id.SessionID) ([]models.Document, error)
	DiscardTemporary(ctx context.Context, sessionID id.SessionID) error
}

// Handler wires document staging endpoints to the intake service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a document handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the staging endpoints. They are keyed by signup
// session, which exists before any authenticated user does.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/signup/{sessionID}/documents", h.HandleUpload)
	r.Get("/signup/{sessionID}/documents", h.HandleList)
	r.Delete("/signup/{sessionID}/documents", h.HandleDiscard)
}

// HandleUpload handles POST /signup/{sessionID}/documents requests. Files
// arrive as multipart form fields named "documents"; an optional form value
// "category_<filename>" tags a file's category explicitly.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid multipart body"))
		return
	}

	files := r.MultipartForm.File["documents"]
	if len(files) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "no documents provided"))
		return
	}

	uploads := make([]service.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "unreadable upload"))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "unreadable upload"))
			return
		}

		uploads = append(uploads, service.Upload{
			Name:        fh.Filename,
			Category:    r.FormValue("category_" + fh.Filename),
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	staged, err := h.service.StoreTemporary(ctx, sessionID, uploads)
	if err != nil {
		h.logger.ErrorContext(ctx, "document staging failed",
			"request_id", requestID,
			"session_id", sessionID.String(),
			"staged", len(staged),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromDocuments(staged))
}

// HandleList handles GET /signup/{sessionID}/documents requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return
	}

	docs, err := h.service.ListTemporary(ctx, sessionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDocuments(docs))
}

// HandleDiscard handles DELETE /signup/{sessionID}/documents requests. A
// rejected applicant uses it to clear staging before retrying.
func (h *Handler) HandleDiscard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return
	}

	if err := h.service.DiscardTemporary(ctx, sessionID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
