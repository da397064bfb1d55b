package consent

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
	"medledger/internal/policy"
	"medledger/internal/state"
	id "medledger/pkg/domain"
	dErrors "medledger/pkg/domain-errors"
	"medledger/pkg/platform/sentinel"
)

// Service owns the canonical set of consent grants: creation, the one-way
// transition to revoked, and validity evaluation. Every operation is a single
// check-then-commit unit; preconditions are evaluated in a fixed order and the
// first failing check wins, with zero state committed.
type Service struct {
	tx      state.Tx
	events  *events.Publisher
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func NewService(tx state.Tx, publisher *events.Publisher, m *metrics.Metrics) *Service {
	return &Service{
		tx:      tx,
		events:  publisher,
		metrics: m,
		tracer:  otel.Tracer("medledger/consent"),
	}
}

// Grant creates a new consent grant from the calling patient to a provider.
//
// Precondition order: caller's patient record exists and is verified
// (CodePatientNotFound covers both states); target provider exists and is
// verified (CodeProviderNotVerified covers both states); duration lies within
// the policy window (CodeInvalidDuration); purpose is non-empty
// (CodeInvalidPurpose). The grantor and grantee may be the same principal;
// duplicate grants for the same pair create separate ids.
func (s *Service) Grant(ctx context.Context, caller id.Principal, tick uint64, req GrantRequest) (id.ConsentID, error) {
	ctx, span := s.tracer.Start(ctx, "consent.grant")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("grant_consent", time.Since(start)) }()

	providerID, err := id.ParsePrincipal(req.ProviderID)
	if err != nil {
		s.metrics.IncOperation("grant_consent", metrics.OutcomeFailure)
		return 0, err
	}
	if len(req.DataCategories) > maxTextLen || len(req.Purpose) > maxTextLen {
		s.metrics.IncOperation("grant_consent", metrics.OutcomeFailure)
		return 0, dErrors.New(dErrors.CodeBadRequest, "description fields exceed maximum length")
	}

	var consentID id.ConsentID
	err = s.tx.RunInTx(ctx, func(st state.Store) error {
		patient, err := st.GetPatient(ctx, caller)
		if errors.Is(err, sentinel.ErrNotFound) || (err == nil && !patient.Verified) {
			return dErrors.New(dErrors.CodePatientNotFound, "patient not registered or not verified")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "read patient")
		}

		provider, err := st.GetProvider(ctx, providerID)
		if errors.Is(err, sentinel.ErrNotFound) || (err == nil && !provider.Verified) {
			return dErrors.New(dErrors.CodeProviderNotVerified, "provider not registered or not verified")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "read provider")
		}

		if !policy.IsValidDuration(req.DurationTicks) {
			return dErrors.New(dErrors.CodeInvalidDuration, "duration outside policy window")
		}
		if req.Purpose == "" {
			return dErrors.New(dErrors.CodeInvalidPurpose, "purpose must be non-empty")
		}

		// All preconditions passed; from here every write commits together.
		consentID, err = st.NextConsentID(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "allocate consent id")
		}

		grant := domain.ConsentGrant{
			ID:              consentID,
			PatientID:       caller,
			ProviderID:      providerID,
			DataCategories:  req.DataCategories,
			Purpose:         req.Purpose,
			Granted:         true,
			GrantedAt:       tick,
			ExpiresAt:       tick + req.DurationTicks,
			CanShareFurther: req.CanShareFurther,
		}
		if err := st.PutConsent(ctx, grant); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "store consent")
		}

		err = st.UpdatePatient(ctx, caller, func(p *domain.Patient) {
			p.TotalConsents++
			p.ActiveConsents++
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "update patient counters")
		}

		_, err = st.AppendAudit(ctx, domain.AuditEntry{
			ConsentID:      consentID,
			AccessedBy:     caller,
			Tick:           tick,
			AccessType:     audit.AccessTypeConsentGranted,
			DataCategories: req.DataCategories,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "append audit entry")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncOperation("grant_consent", metrics.OutcomeFailure)
		return 0, err
	}

	s.metrics.IncOperation("grant_consent", metrics.OutcomeSuccess)
	ev := events.NewEvent(events.EventConsentGranted, caller)
	ev.Subject = providerID
	ev.ConsentID = consentID
	ev.Tick = tick
	s.events.Emit(ctx, ev)
	return consentID, nil
}

// Revoke performs the one-way Active to Revoked transition. Only the grant's
// own patient may revoke, and revocation is not idempotent: a second attempt
// fails with CodeConsentNotFound, signalling there is nothing left to revoke.
func (s *Service) Revoke(ctx context.Context, caller id.Principal, tick uint64, consentID id.ConsentID) error {
	ctx, span := s.tracer.Start(ctx, "consent.revoke")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("revoke_consent", time.Since(start)) }()

	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		grant, err := st.GetConsent(ctx, consentID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeConsentNotFound, "consent not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "read consent")
		}
		if grant.PatientID != caller {
			return dErrors.New(dErrors.CodeNotAuthorized, "only the granting patient can revoke")
		}
		if grant.Revoked {
			return dErrors.New(dErrors.CodeConsentNotFound, "consent already revoked")
		}

		err = st.UpdateConsent(ctx, consentID, func(g *domain.ConsentGrant) {
			g.Revoked = true
			revokedAt := tick
			g.RevokedAt = &revokedAt
			// Granted stays true: validity is the compound predicate, not a
			// single flag.
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "update consent")
		}

		err = st.UpdatePatient(ctx, caller, func(p *domain.Patient) {
			// Clamp rather than underflow if counters ever diverge.
			if p.ActiveConsents > 0 {
				p.ActiveConsents--
			}
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "update patient counters")
		}

		_, err = st.AppendAudit(ctx, domain.AuditEntry{
			ConsentID:      consentID,
			AccessedBy:     caller,
			Tick:           tick,
			AccessType:     audit.AccessTypeConsentRevoked,
			DataCategories: grant.DataCategories,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "append audit entry")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncOperation("revoke_consent", metrics.OutcomeFailure)
		return err
	}

	s.metrics.IncOperation("revoke_consent", metrics.OutcomeSuccess)
	ev := events.NewEvent(events.EventConsentRevoked, caller)
	ev.ConsentID = consentID
	ev.Tick = tick
	s.events.Emit(ctx, ev)
	return nil
}

// IsValid evaluates the compound validity predicate at the given tick.
// Unknown ids are simply invalid, never an error. Expiry is derived lazily
// here; nothing is stored when a grant ages out.
func (s *Service) IsValid(ctx context.Context, consentID id.ConsentID, tick uint64) (bool, error) {
	var valid bool
	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		grant, err := st.GetConsent(ctx, consentID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "read consent")
		}
		valid = grant.ValidAt(tick)
		return nil
	})
	if err != nil {
		return false, err
	}
	s.metrics.IncValidityCheck(valid)
	return valid, nil
}

// Get returns a grant by id.
//
// Errors: CodeConsentNotFound when no grant exists.
func (s *Service) Get(ctx context.Context, consentID id.ConsentID) (domain.ConsentGrant, error) {
	var grant domain.ConsentGrant
	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		g, err := st.GetConsent(ctx, consentID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeConsentNotFound, "consent not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "read consent")
		}
		grant = g
		return nil
	})
	return grant, err
}
