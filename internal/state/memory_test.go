package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medledger/internal/domain"
	id "medledger/pkg/domain"
	"medledger/pkg/platform/sentinel"
)

func TestInMemoryStore_PatientLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	_, err := s.GetPatient(ctx, "alice")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, s.PutPatient(ctx, domain.Patient{ID: "alice", Name: "Alice", RegisteredAt: 10}))
	assert.ErrorIs(t, s.PutPatient(ctx, domain.Patient{ID: "alice"}), sentinel.ErrConflict)

	require.NoError(t, s.UpdatePatient(ctx, "alice", func(p *domain.Patient) {
		p.Verified = true
	}))
	p, err := s.GetPatient(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, p.Verified)
	assert.Equal(t, uint64(10), p.RegisteredAt)

	assert.ErrorIs(t, s.UpdatePatient(ctx, "bob", func(*domain.Patient) {}), sentinel.ErrNotFound)
}

func TestInMemoryStore_ConsentIDAllocation(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	first, err := s.NextConsentID(ctx)
	require.NoError(t, err)
	second, err := s.NextConsentID(ctx)
	require.NoError(t, err)

	assert.Equal(t, id.ConsentID(1), first)
	assert.Equal(t, id.ConsentID(2), second)

	c, err := s.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), c.NextConsentID)
}

func TestInMemoryStore_AuditAppendOnly(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	for i := 0; i < 5; i++ {
		_, err := s.AppendAudit(ctx, domain.AuditEntry{
			ConsentID:  id.SentinelConsentID,
			AccessedBy: "admin",
			Tick:       uint64(100 + i),
			AccessType: "analytics_report",
		})
		require.NoError(t, err)
	}

	entries, err := s.ListAudit(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, uint64(i+1), e.ID)
	}

	tail, err := s.ListAudit(ctx, 3, 0)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, uint64(4), tail[0].ID)

	limited, err := s.ListAudit(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMemoryTx_SerializesCalls(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	tx := NewMemoryTx(s)

	done := make(chan id.ConsentID, 20)
	for i := 0; i < 20; i++ {
		go func() {
			_ = tx.RunInTx(ctx, func(store Store) error {
				cid, err := store.NextConsentID(ctx)
				if err != nil {
					return err
				}
				done <- cid
				return nil
			})
		}()
	}

	seen := make(map[id.ConsentID]bool)
	for i := 0; i < 20; i++ {
		cid := <-done
		assert.False(t, seen[cid], "duplicate consent id %d", cid)
		seen[cid] = true
	}
}
