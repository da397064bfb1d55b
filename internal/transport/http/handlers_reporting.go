package httptransport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"medledger/internal/domain"
	"medledger/internal/reporting"
	id "medledger/pkg/domain"
	dErrors "medledger/pkg/domain-errors"
)

type reportResponse struct {
	ProviderID           string `json:"provider_id"`
	Organization         string `json:"organization"`
	Specialization       string `json:"specialization"`
	Verified             bool   `json:"verified"`
	TotalDataRequests    uint64 `json:"total_data_requests"`
	TotalPatients        uint64 `json:"total_patients"`
	TotalProviders       uint64 `json:"total_providers"`
	TotalConsentsCreated uint64 `json:"total_consents_created"`
	AnalysisStart        uint64 `json:"analysis_start"`
	AnalysisEnd          uint64 `json:"analysis_end"`
	GeneratedAt          uint64 `json:"generated_at"`
	IncludeExpired       bool   `json:"include_expired"`
}

type auditEntryResponse struct {
	ID             uint64 `json:"id"`
	ConsentID      uint64 `json:"consent_id"`
	AccessedBy     string `json:"accessed_by"`
	Tick           uint64 `json:"tick"`
	AccessType     string `json:"access_type"`
	DataCategories string `json:"data_categories"`
}

type auditListResponse struct {
	Entries []auditEntryResponse `json:"entries"`
}

func (h *Handler) handleProviderReport(w http.ResponseWriter, r *http.Request) {
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
	providerID, err := id.ParsePrincipal(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	period := uint64(0)
	if v := r.URL.Query().Get("period"); v != "" {
		period, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, dErrors.New(dErrors.CodeBadRequest, "malformed analysis period"))
			return
		}
	}
	includeExpired := r.URL.Query().Get("include_expired") == "true"

	report, err := h.reporting.GenerateProviderReport(r.Context(), caller, tick, providerID, period, includeExpired)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportResponse(report))
}

func (h *Handler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	afterID := uint64(0)
	limit := 0
	var err error
	if v := r.URL.Query().Get("after"); v != "" {
		afterID, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, dErrors.New(dErrors.CodeBadRequest, "malformed after cursor"))
			return
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, dErrors.New(dErrors.CodeBadRequest, "malformed limit"))
			return
		}
	}

	entries, err := h.audit.List(r.Context(), afterID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuditListResponse(entries))
}

func toReportResponse(rep reporting.Report) reportResponse {
	return reportResponse{
		ProviderID:           rep.ProviderID.String(),
		Organization:         rep.Organization,
		Specialization:       rep.Specialization,
		Verified:             rep.Verified,
		TotalDataRequests:    rep.TotalDataRequests,
		TotalPatients:        rep.TotalPatients,
		TotalProviders:       rep.TotalProviders,
		TotalConsentsCreated: rep.TotalConsentsCreated,
		AnalysisStart:        rep.AnalysisStart,
		AnalysisEnd:          rep.AnalysisEnd,
		GeneratedAt:          rep.GeneratedAt,
		IncludeExpired:       rep.IncludeExpired,
	}
}

func toAuditListResponse(entries []domain.AuditEntry) auditListResponse {
	out := auditListResponse{Entries: make([]auditEntryResponse, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, auditEntryResponse{
			ID:             e.ID,
			ConsentID:      uint64(e.ConsentID),
			AccessedBy:     e.AccessedBy.String(),
			Tick:           e.Tick,
			AccessType:     e.AccessType,
			DataCategories: e.DataCategories,
		})
	}
	return out
}
