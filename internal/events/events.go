package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	id "medledger/pkg/domain"
)

// Event names for state-changing operations. Every committed mutation emits
// exactly one of these to the observability channel.
const (
	EventPatientRegistered  = "patient_registered"
	EventProviderRegistered = "provider_registered"
	EventPatientVerified    = "patient_verified"
	EventProviderVerified   = "provider_verified"
	EventConsentGranted     = "consent_granted"
	EventConsentRevoked     = "consent_revoked"
	EventReportGenerated    = "report_generated"
)

// Event is the structured record shipped to the external sink. Emission is a
// logging side effect, not a data dependency: the ledger's own state never
// depends on whether an event was delivered.
type Event struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Principal id.Principal `json:"principal"`
	Subject   id.Principal `json:"subject,omitempty"`
	ConsentID id.ConsentID `json:"consent_id,omitempty"`
	Tick      uint64       `json:"tick"`
	RequestID string       `json:"request_id,omitempty"`
	At        time.Time    `json:"at"`
}

// NewEvent stamps an event with a fresh id and wall-clock time.
func NewEvent(name string, principal id.Principal) Event {
	return Event{
		ID:        uuid.NewString(),
		Name:      name,
		Principal: principal,
		At:        time.Now().UTC(),
	}
}

// Sink delivers events to an external observability channel.
type Sink interface {
	Deliver(ctx context.Context, e Event) error
}

// MemorySink retains events in process memory for tests and for running
// without an external broker.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Deliver(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// Events returns a copy of everything delivered so far.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event{}, s.events...)
}
