package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medledger/internal/platform/middleware"
)

// NewRouter wires all public endpoints. The dispatcher-facing API surface
// shares one middleware chain; platform endpoints stay outside it.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Caller)

	r.Group(func(api chi.Router) {
		api.Use(middleware.ContentTypeJSON)

		api.Post("/patients", h.handleRegisterPatient)
		api.Post("/providers", h.handleRegisterProvider)
		api.Post("/patients/{id}/verify", h.handleVerifyPatient)
		api.Post("/providers/{id}/verify", h.handleVerifyProvider)
		api.Get("/patients/{id}", h.handleGetPatient)
		api.Get("/providers/{id}", h.handleGetProvider)

		api.Post("/consents", h.handleGrantConsent)
		api.Post("/consents/{id}/revoke", h.handleRevokeConsent)
		api.Get("/consents/{id}/valid", h.handleConsentValidity)

		api.Get("/reports/providers/{id}", h.handleProviderReport)
		api.Get("/audit", h.handleListAudit)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
