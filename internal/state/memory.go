package state

import (
	"context"
	"sort"
	"sync"

	"medledger/internal/domain"
	id "medledger/pkg/domain"
	"medledger/pkg/platform/sentinel"
)

// InMemoryStore keeps the full ledger state in process memory. It backs unit
// tests and single-node development; durability comes from the Postgres store.
type InMemoryStore struct {
	mu        sync.RWMutex
	patients  map[id.Principal]domain.Patient
	providers map[id.Principal]domain.Provider
	consents  map[id.ConsentID]domain.ConsentGrant
	audit     []domain.AuditEntry
	counters  domain.Counters
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		patients:  make(map[id.Principal]domain.Patient),
		providers: make(map[id.Principal]domain.Provider),
		consents:  make(map[id.ConsentID]domain.ConsentGrant),
		counters:  domain.Counters{NextConsentID: 1, NextAuditID: 1},
	}
}

func (s *InMemoryStore) GetPatient(_ context.Context, pid id.Principal) (domain.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[pid]
	if !ok {
		return domain.Patient{}, sentinel.ErrNotFound
	}
	return p, nil
}

func (s *InMemoryStore) PutPatient(_ context.Context, p domain.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[p.ID]; ok {
		return sentinel.ErrConflict
	}
	s.patients[p.ID] = p
	return nil
}

func (s *InMemoryStore) UpdatePatient(_ context.Context, pid id.Principal, apply func(*domain.Patient)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[pid]
	if !ok {
		return sentinel.ErrNotFound
	}
	apply(&p)
	s.patients[pid] = p
	return nil
}

func (s *InMemoryStore) GetProvider(_ context.Context, pid id.Principal) (domain.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.providers[pid]
	if !ok {
		return domain.Provider{}, sentinel.ErrNotFound
	}
	return p, nil
}

func (s *InMemoryStore) PutProvider(_ context.Context, p domain.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.providers[p.ID]; ok {
		return sentinel.ErrConflict
	}
	s.providers[p.ID] = p
	return nil
}

func (s *InMemoryStore) UpdateProvider(_ context.Context, pid id.Principal, apply func(*domain.Provider)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.providers[pid]
	if !ok {
		return sentinel.ErrNotFound
	}
	apply(&p)
	s.providers[pid] = p
	return nil
}

func (s *InMemoryStore) GetConsent(_ context.Context, cid id.ConsentID) (domain.ConsentGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.consents[cid]
	if !ok {
		return domain.ConsentGrant{}, sentinel.ErrNotFound
	}
	return g, nil
}

func (s *InMemoryStore) PutConsent(_ context.Context, g domain.ConsentGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.consents[g.ID]; ok {
		return sentinel.ErrConflict
	}
	s.consents[g.ID] = g
	return nil
}

func (s *InMemoryStore) UpdateConsent(_ context.Context, cid id.ConsentID, apply func(*domain.ConsentGrant)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.consents[cid]
	if !ok {
		return sentinel.ErrNotFound
	}
	apply(&g)
	s.consents[cid] = g
	return nil
}

func (s *InMemoryStore) NextConsentID(_ context.Context) (id.ConsentID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	allocated := s.counters.NextConsentID
	s.counters.NextConsentID++
	return id.ConsentID(allocated), nil
}

func (s *InMemoryStore) AppendAudit(_ context.Context, e domain.AuditEntry) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.counters.NextAuditID
	s.counters.NextAuditID++
	s.audit = append(s.audit, e)
	return e.ID, nil
}

func (s *InMemoryStore) ListAudit(_ context.Context, afterID uint64, limit int) ([]domain.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Entries are appended in id order; find the first id > afterID.
	start := sort.Search(len(s.audit), func(i int) bool { return s.audit[i].ID > afterID })
	out := append([]domain.AuditEntry{}, s.audit[start:]...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) Counters(_ context.Context) (domain.Counters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters, nil
}

func (s *InMemoryStore) IncTotalPatients(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters.TotalPatients++
	return nil
}

func (s *InMemoryStore) IncTotalProviders(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters.TotalProviders++
	return nil
}
