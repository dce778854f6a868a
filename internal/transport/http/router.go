// Package httptransport assembles the HTTP surface: middleware chain, public
// signup routes, and token-protected account routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accounthandler "vendorgate/internal/account/handler"
	audithandler "vendorgate/internal/audit/handler"
	documenthandler "vendorgate/internal/document/handler"
	"vendorgate/internal/platform/metrics"
	"vendorgate/internal/platform/middleware"
)

// requestTimeout bounds one request. Verification runs make several
// sequential model calls, so the bound is generous.
const requestTimeout = 2 * time.Minute

// Deps carries everything the router mounts.
type Deps struct {
	Accounts  *accounthandler.Handler
	Documents *documenthandler.Handler
	Reports   *audithandler.Handler
	Tokens    middleware.TokenValidator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

// NewRouter wires the full route tree under /api.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(requestTimeout))
	if deps.Metrics != nil {
		r.Use(middleware.Latency(deps.Metrics))
	}

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Group(func(public chi.Router) {
			deps.Accounts.RegisterPublic(public)
			deps.Documents.RegisterPublic(public)
			deps.Reports.RegisterPublic(public)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth(deps.Tokens, deps.Logger))
			deps.Accounts.RegisterProtected(protected)
			deps.Reports.RegisterProtected(protected)
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
