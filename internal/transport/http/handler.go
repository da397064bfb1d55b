package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"medledger/internal/consent"
	"medledger/internal/domain"
	"medledger/internal/platform/clock"
	"medledger/internal/platform/middleware"
	"medledger/internal/reporting"
	id "medledger/pkg/domain"
	dErrors "medledger/pkg/domain-errors"
)

// RegistryService is the identity registry surface the transport depends on.
type RegistryService interface {
	RegisterPatient(ctx context.Context, caller id.Principal, tick uint64, name string) (id.Principal, error)
	RegisterProvider(ctx context.Context, caller id.Principal, tick uint64, organization, specialization, license string) (id.Principal, error)
	VerifyPatient(ctx context.Context, caller id.Principal, tick uint64, target id.Principal) error
	VerifyProvider(ctx context.Context, caller id.Principal, tick uint64, target id.Principal) error
	GetPatient(ctx context.Context, pid id.Principal) (domain.Patient, error)
	GetProvider(ctx context.Context, pid id.Principal) (domain.Provider, error)
}

// ConsentService is the consent ledger surface the transport depends on.
type ConsentService interface {
	Grant(ctx context.Context, caller id.Principal, tick uint64, req consent.GrantRequest) (id.ConsentID, error)
	Revoke(ctx context.Context, caller id.Principal, tick uint64, consentID id.ConsentID) error
	IsValid(ctx context.Context, consentID id.ConsentID, tick uint64) (bool, error)
}

// ReportingService is the reporting surface the transport depends on.
type ReportingService interface {
	GenerateProviderReport(ctx context.Context, caller id.Principal, tick uint64, providerID id.Principal, analysisPeriodTicks uint64, includeExpired bool) (reporting.Report, error)
}

// AuditService is the audit read surface the transport depends on.
type AuditService interface {
	List(ctx context.Context, afterID uint64, limit int) ([]domain.AuditEntry, error)
}

// Handler is the thin HTTP layer. It decodes requests, resolves the caller
// identity and clock tick supplied by the dispatcher, and delegates to the
// services; no business logic lives here.
type Handler struct {
	logger    *slog.Logger
	registry  RegistryService
	consent   ConsentService
	reporting ReportingService
	audit     AuditService
	clock     clock.Source
}

func NewHandler(
	logger *slog.Logger,
	registry RegistryService,
	consentSvc ConsentService,
	reportingSvc ReportingService,
	auditSvc AuditService,
	clockSrc clock.Source,
) *Handler {
	return &Handler{
		logger:    logger,
		registry:  registry,
		consent:   consentSvc,
		reporting: reportingSvc,
		audit:     auditSvc,
		clock:     clockSrc,
	}
}

// caller resolves the dispatcher-supplied principal for the current request.
func (h *Handler) caller(r *http.Request) (id.Principal, error) {
	raw := middleware.GetCaller(r.Context())
	if raw == "" {
		return "", dErrors.New(dErrors.CodeNotAuthorized, "missing caller principal")
	}
	return id.ParsePrincipal(raw)
}

// tick resolves the logical clock value for the current request: the
// dispatcher's header when present, the local source otherwise.
func (h *Handler) tick(r *http.Request) (uint64, error) {
	raw := r.Header.Get(middleware.TickHeader)
	if raw == "" {
		return h.clock.Tick(), nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "malformed clock tick header")
	}
	return n, nil
}
