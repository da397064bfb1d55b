package reporting

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"medledger/internal/audit"
	"medledger/internal/domain"
	"medledger/internal/events"
	"medledger/internal/platform/metrics"
	"medledger/internal/state"
	id "medledger/pkg/domain"
	dErrors "medledger/pkg/domain-errors"
	"medledger/pkg/platform/sentinel"
)

// Service produces provider-facing analytics snapshots. Generating a report
// is itself an audited access: one audit entry is appended inside the same
// transaction that reads the aggregates.
type Service struct {
	tx      state.Tx
	admin   id.Principal
	events  *events.Publisher
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func NewService(tx state.Tx, admin id.Principal, publisher *events.Publisher, m *metrics.Metrics) *Service {
	return &Service{
		tx:      tx,
		admin:   admin,
		events:  publisher,
		metrics: m,
		tracer:  otel.Tracer("medledger/reporting"),
	}
}

// GenerateProviderReport builds a snapshot for the given provider.
//
// Preconditions in order: provider record exists (CodeProviderNotFound);
// caller is the provider itself or the administrator (CodeNotAuthorized);
// provider is verified (CodeProviderNotVerified).
func (s *Service) GenerateProviderReport(ctx context.Context, caller id.Principal, tick uint64, providerID id.Principal, analysisPeriodTicks uint64, includeExpired bool) (Report, error) {
	ctx, span := s.tracer.Start(ctx, "reporting.provider_report")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("provider_report", time.Since(start)) }()

	var report Report
	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		provider, err := st.GetProvider(ctx, providerID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeProviderNotFound, "provider not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "read provider")
		}
		if caller != providerID && caller != s.admin {
			return dErrors.New(dErrors.CodeNotAuthorized, "reports are available to the provider and the administrator")
		}
		if !provider.Verified {
			return dErrors.New(dErrors.CodeProviderNotVerified, "provider not verified")
		}

		err = st.UpdateProvider(ctx, providerID, func(p *domain.Provider) {
			p.TotalDataRequests++
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "update provider counters")
		}

		_, err = st.AppendAudit(ctx, domain.AuditEntry{
			ConsentID:      id.SentinelConsentID,
			AccessedBy:     caller,
			Tick:           tick,
			AccessType:     audit.AccessTypeAnalyticsReport,
			DataCategories: "provider analytics snapshot",
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "append audit entry")
		}

		counters, err := st.Counters(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "read counters")
		}

		analysisStart := uint64(0)
		if tick > analysisPeriodTicks {
			analysisStart = tick - analysisPeriodTicks
		}

		report = Report{
			ProviderID:           provider.ID,
			Organization:         provider.Organization,
			Specialization:       provider.Specialization,
			Verified:             provider.Verified,
			TotalDataRequests:    provider.TotalDataRequests + 1,
			TotalPatients:        counters.TotalPatients,
			TotalProviders:       counters.TotalProviders,
			TotalConsentsCreated: counters.NextConsentID - 1,
			AnalysisStart:        analysisStart,
			AnalysisEnd:          tick,
			GeneratedAt:          tick,
			IncludeExpired:       includeExpired,
		}
		return nil
	})
	if err != nil {
		s.metrics.IncOperation("provider_report", metrics.OutcomeFailure)
		return Report{}, err
	}

	s.metrics.IncOperation("provider_report", metrics.OutcomeSuccess)
	ev := events.NewEvent(events.EventReportGenerated, caller)
	ev.Subject = providerID
	ev.Tick = tick
	s.events.Emit(ctx, ev)
	return report, nil
}
