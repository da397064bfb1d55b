package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medledger/internal/domain"
	"medledger/internal/platform/middleware"
	id "medledger/pkg/domain"
	dErrors "medledger/pkg/domain-errors"
)

type registerPatientRequest struct {
	Name string `json:"name"`
}

type registerProviderRequest struct {
	Organization   string `json:"organization"`
	Specialization string `json:"specialization"`
	License        string `json:"license"`
}

type registeredResponse struct {
	ID string `json:"id"`
}

type patientResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	RegisteredAt   uint64 `json:"registered_at"`
	Verified       bool   `json:"verified"`
	TotalConsents  uint64 `json:"total_consents"`
	ActiveConsents uint64 `json:"active_consents"`
}

type providerResponse struct {
	ID                string `json:"id"`
	Organization      string `json:"organization"`
	Specialization    string `json:"specialization"`
	License           string `json:"license"`
	RegisteredAt      uint64 `json:"registered_at"`
	Verified          bool   `json:"verified"`
	TotalDataRequests uint64 `json:"total_data_requests"`
}

func (h *Handler) handleRegisterPatient(w http.ResponseWriter, r *http.Request) {
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

	var req registerPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	pid, err := h.registry.RegisterPatient(r.Context(), caller, tick, req.Name)
	if err != nil {
		h.logger.WarnContext(r.Context(), "register patient failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registeredResponse{ID: pid.String()})
}

func (h *Handler) handleRegisterProvider(w http.ResponseWriter, r *http.Request) {
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

	var req registerProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	pid, err := h.registry.RegisterProvider(r.Context(), caller, tick, req.Organization, req.Specialization, req.License)
	if err != nil {
		h.logger.WarnContext(r.Context(), "register provider failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registeredResponse{ID: pid.String()})
}

func (h *Handler) handleVerifyPatient(w http.ResponseWriter, r *http.Request) {
	h.handleVerify(w, r, h.registry.VerifyPatient)
}

func (h *Handler) handleVerifyProvider(w http.ResponseWriter, r *http.Request) {
	h.handleVerify(w, r, h.registry.VerifyProvider)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request, verify func(ctx context.Context, caller id.Principal, tick uint64, target id.Principal) error) {
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
	target, err := id.ParsePrincipal(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := verify(r.Context(), caller, tick, target); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	pid, err := id.ParsePrincipal(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.registry.GetPatient(r.Context(), pid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPatientResponse(p))
}

func (h *Handler) handleGetProvider(w http.ResponseWriter, r *http.Request) {
	pid, err := id.ParsePrincipal(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.registry.GetProvider(r.Context(), pid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProviderResponse(p))
}

func toPatientResponse(p domain.Patient) patientResponse {
	return patientResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		RegisteredAt:   p.RegisteredAt,
		Verified:       p.Verified,
		TotalConsents:  p.TotalConsents,
		ActiveConsents: p.ActiveConsents,
	}
}

func toProviderResponse(p domain.Provider) providerResponse {
	return providerResponse{
		ID:                p.ID.String(),
		Organization:      p.Organization,
		Specialization:    p.Specialization,
		License:           p.License,
		RegisteredAt:      p.RegisteredAt,
		Verified:          p.Verified,
		TotalDataRequests: p.TotalDataRequests,
	}
}
