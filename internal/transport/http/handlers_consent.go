package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medledger/internal/consent"
	"medledger/internal/platform/middleware"
	id "medledger/pkg/domain"
	dErrors "medledger/pkg/domain-errors"
)

type grantConsentRequest struct {
	ProviderID      string `json:"provider_id"`
	DataCategories  string `json:"data_categories"`
	Purpose         string `json:"purpose"`
	DurationTicks   uint64 `json:"duration_ticks"`
	CanShareFurther bool   `json:"can_share_further"`
}

type grantConsentResponse struct {
	ConsentID uint64 `json:"consent_id"`
	ExpiresAt uint64 `json:"expires_at"`
}

type validityResponse struct {
	ConsentID uint64 `json:"consent_id"`
	Valid     bool   `json:"valid"`
	Tick      uint64 `json:"tick"`
}

func (h *Handler) handleGrantConsent(w http.ResponseWriter, r *http.Request) {
	caller, err := h.caller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	tick, err := h.tick(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req grantConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	consentID, err := h.consent.Grant(r.Context(), caller, tick, consent.GrantRequest{
		ProviderID:      req.ProviderID,
		DataCategories:  req.DataCategories,
		Purpose:         req.Purpose,
		DurationTicks:   req.DurationTicks,
		CanShareFurther: req.CanShareFurther,
	})
	if err != nil {
		h.logger.WarnContext(r.Context(), "grant consent failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, grantConsentResponse{
		ConsentID: uint64(consentID),
		ExpiresAt: tick + req.DurationTicks,
	})
}

func (h *Handler) handleRevokeConsent(w http.ResponseWriter, r *http.Request) {
	caller, err := h.caller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	tick, err := h.tick(r)
	if err != nil {
		writeError(w, err)
		return
	}
	consentID, err := id.ParseConsentID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.consent.Revoke(r.Context(), caller, tick, consentID); err != nil {
		h.logger.WarnContext(r.Context(), "revoke consent failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"consent_id", consentID.String(),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleConsentValidity(w http.ResponseWriter, r *http.Request) {
	tick, err := h.tick(r)
	if err != nil {
		writeError(w, err)
		return
	}
	consentID, err := id.ParseConsentID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	valid, err := h.consent.IsValid(r.Context(), consentID, tick)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validityResponse{
		ConsentID: uint64(consentID),
		Valid:     valid,
		Tick:      tick,
	})
}
