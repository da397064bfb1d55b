package consent

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medledger/internal/audit"
	"medledger/internal/events"
	"medledger/internal/policy"
	"medledger/internal/registry"
	"medledger/internal/state"
	id "medledger/pkg/domain"
	dErrors "medledger/pkg/domain-errors"
)

const adminPrincipal = "admin"

type fixture struct {
	svc   *Service
	reg   *registry.Service
	store *state.InMemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := state.NewInMemoryStore()
	tx := state.NewMemoryTx(store)
	pub := events.NewPublisher(64, slog.New(slog.DiscardHandler))
	return &fixture{
		svc:   NewService(tx, pub, nil),
		reg:   registry.NewService(tx, adminPrincipal, pub, nil),
		store: store,
	}
}

// registerVerified sets up a verified patient and provider pair.
func (f *fixture) registerVerified(t *testing.T, ctx context.Context, patient, provider id.Principal) {
	t.Helper()
	_, err := f.reg.RegisterPatient(ctx, patient, 10, "Patient "+patient.String())
	require.NoError(t, err)
	_, err = f.reg.RegisterProvider(ctx, provider, 10, "Org "+provider.String(), "general", "LIC-1")
	require.NoError(t, err)
	require.NoError(t, f.reg.VerifyPatient(ctx, adminPrincipal, 11, patient))
	require.NoError(t, f.reg.VerifyProvider(ctx, adminPrincipal, 11, provider))
}

func validGrant() GrantRequest {
	return GrantRequest{
		ProviderID:      "gen-hospital",
		DataCategories:  "Labs",
		Purpose:         "diagnosis",
		DurationTicks:   1000,
		CanShareFurther: true,
	}
}

func TestGrant_HappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.registerVerified(t, ctx, "alice", "gen-hospital")

	cid, err := f.svc.Grant(ctx, "alice", 100, validGrant())
	require.NoError(t, err)
	assert.Equal(t, id.ConsentID(1), cid)

	g, err := f.store.GetConsent(ctx, cid)
	require.NoError(t, err)
	assert.True(t, g.Granted)
	assert.False(t, g.Revoked)
	assert.Nil(t, g.RevokedAt)
	assert.Equal(t, uint64(100), g.GrantedAt)
	assert.Equal(t, uint64(1100), g.ExpiresAt)
	assert.Equal(t, g.GrantedAt+1000, g.ExpiresAt)
	assert.True(t, g.CanShareFurther)

	p, err := f.store.GetPatient(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p.TotalConsents)
	assert.Equal(t, uint64(1), p.ActiveConsents)

	// One audit entry, tied to the grant.
	entries, err := f.store.ListAudit(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, cid, entries[0].ConsentID)
	assert.Equal(t, audit.AccessTypeConsentGranted, entries[0].AccessType)
}

func TestGrant_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.registerVerified(t, ctx, "alice", "gen-hospital")

	for want := uint64(1); want <= 3; want++ {
		cid, err := f.svc.Grant(ctx, "alice", 100, validGrant())
		require.NoError(t, err)
		assert.Equal(t, id.ConsentID(want), cid)
	}
}

func TestGrant_PreconditionOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown patient", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Grant(ctx, "ghost", 100, validGrant())
		assert.True(t, dErrors.HasCode(err, dErrors.CodePatientNotFound))
	})

	t.Run("unverified patient", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.reg.RegisterPatient(ctx, "alice", 10, "Alice")
		require.NoError(t, err)
		_, err = f.svc.Grant(ctx, "alice", 100, validGrant())
		assert.True(t, dErrors.HasCode(err, dErrors.CodePatientNotFound))
	})

	t.Run("unknown provider", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.reg.RegisterPatient(ctx, "alice", 10, "Alice")
		require.NoError(t, err)
		require.NoError(t, f.reg.VerifyPatient(ctx, adminPrincipal, 11, "alice"))

		_, err = f.svc.Grant(ctx, "alice", 100, validGrant())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeProviderNotVerified))
	})

	t.Run("unverified provider fails even with valid everything else", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.reg.RegisterPatient(ctx, "alice", 10, "Alice")
		require.NoError(t, err)
		require.NoError(t, f.reg.VerifyPatient(ctx, adminPrincipal, 11, "alice"))
		_, err = f.reg.RegisterProvider(ctx, "gen-hospital", 10, "GenHospital", "genetics", "LIC-1")
		require.NoError(t, err)

		_, err = f.svc.Grant(ctx, "alice", 100, validGrant())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeProviderNotVerified))
	})

	t.Run("invalid duration consumes no consent id", func(t *testing.T) {
		f := newFixture(t)
		f.registerVerified(t, ctx, "alice", "gen-hospital")

		req := validGrant()
		req.DurationTicks = policy.MinDurationTicks - 1
		_, err := f.svc.Grant(ctx, "alice", 100, req)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidDuration))

		c, err := f.store.Counters(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), c.NextConsentID)
		assert.Equal(t, uint64(1), c.NextAuditID)

		// The next successful grant still gets id 1.
		cid, err := f.svc.Grant(ctx, "alice", 100, validGrant())
		require.NoError(t, err)
		assert.Equal(t, id.ConsentID(1), cid)
	})

	t.Run("empty purpose", func(t *testing.T) {
		f := newFixture(t)
		f.registerVerified(t, ctx, "alice", "gen-hospital")

		req := validGrant()
		req.Purpose = ""
		_, err := f.svc.Grant(ctx, "alice", 100, req)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidPurpose))
	})
}

func TestGrant_SelfGrantPermitted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// One principal registered as both patient and provider.
	_, err := f.reg.RegisterPatient(ctx, "dual", 10, "Dual Role")
	require.NoError(t, err)
	_, err = f.reg.RegisterProvider(ctx, "dual", 10, "Dual Clinic", "general", "LIC-9")
	require.NoError(t, err)
	require.NoError(t, f.reg.VerifyPatient(ctx, adminPrincipal, 11, "dual"))
	require.NoError(t, f.reg.VerifyProvider(ctx, adminPrincipal, 11, "dual"))

	req := validGrant()
	req.ProviderID = "dual"
	cid, err := f.svc.Grant(ctx, "dual", 100, req)
	require.NoError(t, err)
	assert.Equal(t, id.ConsentID(1), cid)
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.registerVerified(t, ctx, "alice", "gen-hospital")

	cid, err := f.svc.Grant(ctx, "alice", 100, validGrant())
	require.NoError(t, err)

	t.Run("only the granting patient can revoke", func(t *testing.T) {
		err := f.svc.Revoke(ctx, "mallory", 150, cid)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotAuthorized))
	})

	t.Run("unknown id", func(t *testing.T) {
		err := f.svc.Revoke(ctx, "alice", 150, 99)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConsentNotFound))
	})

	t.Run("revocation is permanent before expiry", func(t *testing.T) {
		require.NoError(t, f.svc.Revoke(ctx, "alice", 150, cid))

		g, err := f.store.GetConsent(ctx, cid)
		require.NoError(t, err)
		assert.True(t, g.Granted, "granted flag never changes")
		assert.True(t, g.Revoked)
		require.NotNil(t, g.RevokedAt)
		assert.Equal(t, uint64(150), *g.RevokedAt)

		valid, err := f.svc.IsValid(ctx, cid, 200) // well before expiry at 1100
		require.NoError(t, err)
		assert.False(t, valid)

		p, err := f.store.GetPatient(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), p.ActiveConsents)
		assert.Equal(t, uint64(1), p.TotalConsents, "lifetime count survives revocation")
	})

	t.Run("second revocation fails, not idempotent", func(t *testing.T) {
		err := f.svc.Revoke(ctx, "alice", 160, cid)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConsentNotFound))
	})
}

func TestIsValid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.registerVerified(t, ctx, "alice", "gen-hospital")

	cid, err := f.svc.Grant(ctx, "alice", 100, validGrant())
	require.NoError(t, err)

	t.Run("get returns the stored grant", func(t *testing.T) {
		g, err := f.svc.Get(ctx, cid)
		require.NoError(t, err)
		assert.Equal(t, id.Principal("alice"), g.PatientID)

		_, err = f.svc.Get(ctx, 999)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConsentNotFound))
	})

	t.Run("unknown id is invalid, never an error", func(t *testing.T) {
		valid, err := f.svc.IsValid(ctx, 999, 100)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("active within window", func(t *testing.T) {
		valid, err := f.svc.IsValid(ctx, cid, 1100) // expiry tick inclusive
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("expired past window, nothing stored", func(t *testing.T) {
		valid, err := f.svc.IsValid(ctx, cid, 1101)
		require.NoError(t, err)
		assert.False(t, valid)

		g, err := f.store.GetConsent(ctx, cid)
		require.NoError(t, err)
		assert.False(t, g.Revoked, "expiry is derived, not stored")
	})
}

// TestConsentLifecycleScenario walks the canonical flow end to end:
// register, verify, grant at clock 100, revoke, check validity.
func TestConsentLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.reg.RegisterPatient(ctx, "alice", 90, "Alice")
	require.NoError(t, err)
	_, err = f.reg.RegisterProvider(ctx, "gen-hospital", 91, "GenHospital", "genetics", "LIC-7")
	require.NoError(t, err)
	require.NoError(t, f.reg.VerifyPatient(ctx, adminPrincipal, 95, "alice"))
	require.NoError(t, f.reg.VerifyProvider(ctx, adminPrincipal, 95, "gen-hospital"))

	cid, err := f.svc.Grant(ctx, "alice", 100, GrantRequest{
		ProviderID:      "gen-hospital",
		DataCategories:  "Labs",
		Purpose:         "diagnosis",
		DurationTicks:   1000,
		CanShareFurther: true,
	})
	require.NoError(t, err)
	assert.Equal(t, id.ConsentID(1), cid)

	g, err := f.store.GetConsent(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, uint64(1100), g.ExpiresAt)

	require.NoError(t, f.svc.Revoke(ctx, "alice", 110, cid))

	valid, err := f.svc.IsValid(ctx, cid, 111)
	require.NoError(t, err)
	assert.False(t, valid)
}
