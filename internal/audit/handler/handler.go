// Package handler wires the audit report endpoints.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendorgate/internal/audit/models"
	id "vendorgate/pkg/domain"
	dErrors "vendorgate/pkg/domain-errors"
	"vendorgate/pkg/platform/httputil"
	"vendorgate/pkg/platform/sentinel"
	"vendorgate/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the report operations the handler needs.
type Service interface {
	Staged(ctx context.Context, sessionID id.SessionID) (models.Report, error)
	Latest(ctx context.Context, userID id.UserID) (models.Report, error)
}

// Handler wires audit report endpoints to the audit service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an audit handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the session-keyed report endpoint used before an
// account exists.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/signup/{sessionID}/report", h.HandleStaged)
}

// RegisterProtected mounts the endpoints requiring a bearer token.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/reports/latest", h.HandleLatest)
}

// HandleStaged handles GET /signup/{sessionID}/report requests.
func (h *Handler) HandleStaged(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return
	}

	report, err := h.service.Staged(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no report for this session"))
			return
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleLatest handles GET /reports/latest requests: the newest durable
// report for the authenticated user.
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	report, err := h.service.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no reports yet"))
			return
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}
