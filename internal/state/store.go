package state

import (
	"context"

	"medledger/internal/domain"
	id "medledger/pkg/domain"
)

// Store is the unified persistence surface for the four keyed collections and
// the four scalar counters. Keeping them behind one interface lets a single
// transaction boundary cover every read and write of a logical call, so
// counters and records can never diverge.
//
// Stores return pkg/platform/sentinel errors for factual states (ErrNotFound,
// ErrConflict); services translate those into domain error codes.
type Store interface {
	GetPatient(ctx context.Context, pid id.Principal) (domain.Patient, error)
	PutPatient(ctx context.Context, p domain.Patient) error
	// UpdatePatient applies a field-level mutation to the current record and
	// writes it back, keeping invariants auditable in one place.
	UpdatePatient(ctx context.Context, pid id.Principal, apply func(*domain.Patient)) error

	GetProvider(ctx context.Context, pid id.Principal) (domain.Provider, error)
	PutProvider(ctx context.Context, p domain.Provider) error
	UpdateProvider(ctx context.Context, pid id.Principal, apply func(*domain.Provider)) error

	GetConsent(ctx context.Context, cid id.ConsentID) (domain.ConsentGrant, error)
	PutConsent(ctx context.Context, g domain.ConsentGrant) error
	UpdateConsent(ctx context.Context, cid id.ConsentID, apply func(*domain.ConsentGrant)) error

	// NextConsentID allocates and advances the consent identifier counter.
	// Callers must only invoke it after every precondition has passed, so a
	// failed call never consumes an id.
	NextConsentID(ctx context.Context) (id.ConsentID, error)

	// AppendAudit allocates the next audit id, stores the entry under it, and
	// returns the id. Entries are never mutated or deleted.
	AppendAudit(ctx context.Context, e domain.AuditEntry) (uint64, error)
	// ListAudit returns entries with id > afterID in ascending id order, at
	// most limit entries (no limit when limit <= 0).
	ListAudit(ctx context.Context, afterID uint64, limit int) ([]domain.AuditEntry, error)

	Counters(ctx context.Context) (domain.Counters, error)
	IncTotalPatients(ctx context.Context) error
	IncTotalProviders(ctx context.Context) error
}

// Tx provides the transaction boundary required by the execution model: each
// public operation runs as one indivisible unit against shared state, with no
// partial visibility of in-progress writes. Implementations wrap a database
// transaction or, in-memory, a coarse lock.
type Tx interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}
