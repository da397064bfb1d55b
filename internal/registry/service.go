package registry

import (
	"context"
	"errors"

	"medledger/internal/domain"
	"medledger/internal/events"
	"medledger/internal/platform/metrics"
	"medledger/internal/state"
	id "medledger/pkg/domain"
	dErrors "medledger/pkg/domain-errors"
	"medledger/pkg/platform/sentinel"
)

// maxTextLen bounds caller-supplied display text (names, organizations,
// specializations, license numbers).
const maxTextLen = 256

// Service owns patient and provider records: self-registration, administrator
// verification, and read-only lookup. Registration is open to anyone claiming
// an identity; standing comes only from administrator verification.
type Service struct {
	tx      state.Tx
	admin   id.Principal
	events  *events.Publisher
	metrics *metrics.Metrics
}

func NewService(tx state.Tx, admin id.Principal, publisher *events.Publisher, m *metrics.Metrics) *Service {
	return &Service{tx: tx, admin: admin, events: publisher, metrics: m}
}

// RegisterPatient creates an unverified patient record for the caller.
//
// Errors: CodeAlreadyExists when a record for the caller exists;
// CodeBadRequest on malformed name.
func (s *Service) RegisterPatient(ctx context.Context, caller id.Principal, tick uint64, name string) (id.Principal, error) {
	if name == "" || len(name) > maxTextLen {
		return "", dErrors.New(dErrors.CodeBadRequest, "name must be non-empty bounded text")
	}

	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		patient := domain.Patient{
			ID:           caller,
			Name:         name,
			RegisteredAt: tick,
		}
		if err := st.PutPatient(ctx, patient); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeAlreadyExists, "patient already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "store patient")
		}
		return st.IncTotalPatients(ctx)
	})
	if err != nil {
		s.metrics.IncOperation("register_patient", metrics.OutcomeFailure)
		return "", err
	}

	s.metrics.IncOperation("register_patient", metrics.OutcomeSuccess)
	ev := events.NewEvent(events.EventPatientRegistered, caller)
	ev.Tick = tick
	s.events.Emit(ctx, ev)
	return caller, nil
}

// RegisterProvider creates an unverified provider record for the caller.
func (s *Service) RegisterProvider(ctx context.Context, caller id.Principal, tick uint64, organization, specialization, license string) (id.Principal, error) {
	for _, field := range []string{organization, specialization, license} {
		if field == "" || len(field) > maxTextLen {
			return "", dErrors.New(dErrors.CodeBadRequest, "provider fields must be non-empty bounded text")
		}
	}

	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		provider := domain.Provider{
			ID:             caller,
			Organization:   organization,
			Specialization: specialization,
			License:        license,
			RegisteredAt:   tick,
		}
		if err := st.PutProvider(ctx, provider); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeAlreadyExists, "provider already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "store provider")
		}
		return st.IncTotalProviders(ctx)
	})
	if err != nil {
		s.metrics.IncOperation("register_provider", metrics.OutcomeFailure)
		return "", err
	}

	s.metrics.IncOperation("register_provider", metrics.OutcomeSuccess)
	ev := events.NewEvent(events.EventProviderRegistered, caller)
	ev.Tick = tick
	s.events.Emit(ctx, ev)
	return caller, nil
}

// VerifyPatient marks a patient as verified. Administrator-only, idempotent:
// verifying twice is a no-op, not an error.
func (s *Service) VerifyPatient(ctx context.Context, caller id.Principal, tick uint64, target id.Principal) error {
	if caller != s.admin {
		s.metrics.IncOperation("verify_patient", metrics.OutcomeFailure)
		return dErrors.New(dErrors.CodeNotAuthorized, "only the administrator can verify identities")
	}

	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		err := st.UpdatePatient(ctx, target, func(p *domain.Patient) {
			p.Verified = true
		})
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodePatientNotFound, "patient not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "update patient")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncOperation("verify_patient", metrics.OutcomeFailure)
		return err
	}

	s.metrics.IncOperation("verify_patient", metrics.OutcomeSuccess)
	ev := events.NewEvent(events.EventPatientVerified, caller)
	ev.Subject = target
	ev.Tick = tick
	s.events.Emit(ctx, ev)
	return nil
}

// VerifyProvider marks a provider as verified. Same contract as VerifyPatient.
func (s *Service) VerifyProvider(ctx context.Context, caller id.Principal, tick uint64, target id.Principal) error {
	if caller != s.admin {
		s.metrics.IncOperation("verify_provider", metrics.OutcomeFailure)
		return dErrors.New(dErrors.CodeNotAuthorized, "only the administrator can verify identities")
	}

	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		err := st.UpdateProvider(ctx, target, func(p *domain.Provider) {
			p.Verified = true
		})
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeProviderNotFound, "provider not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "update provider")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncOperation("verify_provider", metrics.OutcomeFailure)
		return err
	}

	s.metrics.IncOperation("verify_provider", metrics.OutcomeSuccess)
	ev := events.NewEvent(events.EventProviderVerified, caller)
	ev.Subject = target
	ev.Tick = tick
	s.events.Emit(ctx, ev)
	return nil
}

// IsPatientVerified reports verification status. Unknown identities are
// simply unverified, never an error.
func (s *Service) IsPatientVerified(ctx context.Context, pid id.Principal) (bool, error) {
	var verified bool
	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		p, err := st.GetPatient(ctx, pid)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "read patient")
		}
		verified = p.Verified
		return nil
	})
	return verified, err
}

// IsProviderVerified mirrors IsPatientVerified for the provider map.
func (s *Service) IsProviderVerified(ctx context.Context, pid id.Principal) (bool, error) {
	var verified bool
	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		p, err := st.GetProvider(ctx, pid)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "read provider")
		}
		verified = p.Verified
		return nil
	})
	return verified, err
}

// GetPatient returns identity metadata and verification status.
//
// Errors: CodePatientNotFound when no record exists.
func (s *Service) GetPatient(ctx context.Context, pid id.Principal) (domain.Patient, error) {
	var patient domain.Patient
	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		p, err := st.GetPatient(ctx, pid)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodePatientNotFound, "patient not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "read patient")
		}
		patient = p
		return nil
	})
	return patient, err
}

// GetProvider returns identity metadata and verification status.
//
// Errors: CodeProviderNotFound when no record exists.
func (s *Service) GetProvider(ctx context.Context, pid id.Principal) (domain.Provider, error) {
	var provider domain.Provider
	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		p, err := st.GetProvider(ctx, pid)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeProviderNotFound, "provider not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "read provider")
		}
		provider = p
		return nil
	})
	return provider, err
}
