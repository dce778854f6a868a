// Package handler wires the account endpoints: signup, the compliance gate,
// sign-in, and the directory.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vendorgate/internal/account/models"
	"vendorgate/internal/account/service"
	id "vendorgate/pkg/domain"
	dErrors "vendorgate/pkg/domain-errors"
	"vendorgate/pkg/platform/httputil"
	"vendorgate/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the gate operations the handler needs.
type Service interface {
	StartSignup(ctx context.Context, req service.SignupRequest) (id.SessionID, error)
	RunCompliance(ctx context.Context, sessionID id.SessionID) (service.Verdict, error)
	SignIn(ctx context.Context, email, password string) (service.Session, error)
	Profile(ctx context.Context, userID id.UserID) (models.UserProfile, error)
	VisibleUsers(ctx context.Context) ([]models.UserProfile, error)
	Directory(ctx context.Context, accountType models.AccountType) ([]models.UserProfile, error)
}

// Handler wires account endpoints to the gate service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an account handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/signup", h.HandleSignup)
	r.Post("/signup/{sessionID}/verify", h.HandleVerify)
	r.Post("/login", h.HandleLogin)
}

// RegisterProtected mounts the endpoints requiring a bearer token.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/me", h.HandleMe)
	r.Get("/users", h.HandleVisibleUsers)
	r.Get("/directory/{accountType}", h.HandleDirectory)
}

// HandleSignup handles POST /signup requests.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SignupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	sessionID, err := h.service.StartSignup(ctx, req.ToDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "signup rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, SignupResponse{SessionID: sessionID.String()})
}

// HandleVerify handles POST /signup/{sessionID}/verify requests. It runs the
// compliance gate over the session's staged documents.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return
	}

	verdict, err := h.service.RunCompliance(ctx, sessionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "compliance run failed",
			"request_id", requestID,
			"session_id", sessionID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "compliance run served",
		"request_id", requestID,
		"session_id", sessionID.String(),
		"passed", verdict.Passed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromVerdict(verdict))
}

// HandleLogin handles POST /login requests.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	session, err := h.service.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "sign-in rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		Token:   session.Token,
		Profile: FromProfile(session.Profile),
	})
}

// HandleMe handles GET /me requests.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	profile, err := h.service.Profile(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProfile(profile))
}

// HandleVisibleUsers handles GET /users requests: the accounts on the other
// side of the marketplace, or everyone for admins.
func (h *Handler) HandleVisibleUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.service.VisibleUsers(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProfiles(profiles))
}

// HandleDirectory handles GET /directory/{accountType} requests.
func (h *Handler) HandleDirectory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.service.Directory(ctx, models.AccountType(chi.URLParam(r, "accountType")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProfiles(profiles))
}
