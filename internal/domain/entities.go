package domain

import id "medledger/pkg/domain"

// Patient is the self-registered grantor identity. Records are never deleted;
// the verified flag transitions false to true exactly once, administrator-only.
type Patient struct {
	ID             id.Principal
	Name           string
	RegisteredAt   uint64 // logical clock tick at creation
	Verified       bool
	TotalConsents  uint64 // lifetime grant count, never decremented
	ActiveConsents uint64 // incremented on grant, decremented on revoke
}

// Provider is the self-registered grantee identity. Same lifecycle shape as
// Patient.
type Provider struct {
	ID                id.Principal
	Organization      string
	Specialization    string
	License           string
	Verified          bool
	RegisteredAt      uint64
	TotalDataRequests uint64 // incremented by report generation
}

// ConsentGrant authorizes one provider to access a patient's data categories
// for a stated purpose until expiry, unless revoked sooner. Grants are never
// deleted; revocation is a soft, one-way transition.
type ConsentGrant struct {
	ID              id.ConsentID
	PatientID       id.Principal
	ProviderID      id.Principal
	DataCategories  string
	Purpose         string
	Granted         bool // true at creation, never changes
	GrantedAt       uint64
	ExpiresAt       uint64 // GrantedAt + requested duration
	CanShareFurther bool
	Revoked         bool
	RevokedAt       *uint64 // absent until revoked, then set once
}

// ValidAt implements the compound validity predicate. A revoked grant is
// permanently invalid regardless of expiry.
func (g ConsentGrant) ValidAt(tick uint64) bool {
	return g.Granted && !g.Revoked && tick <= g.ExpiresAt
}

// AuditEntry is one append-only record of an access or reporting event.
// ConsentID is id.SentinelConsentID for entries not tied to a single grant.
type AuditEntry struct {
	ID             uint64
	ConsentID      id.ConsentID
	AccessedBy     id.Principal
	Tick           uint64
	AccessType     string
	DataCategories string
}

// Counters is the process-wide monotonic state coordinating identifier
// allocation and platform totals. It must be restored exactly on restart.
type Counters struct {
	NextConsentID  uint64 // starts at 1, advances by 1 per successful grant
	NextAuditID    uint64 // starts at 1, advances by 1 per appended entry
	TotalPatients  uint64
	TotalProviders uint64
}
