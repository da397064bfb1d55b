package audit

import (
	"context"

	"medledger/internal/domain"
	"medledger/internal/state"
	dErrors "medledger/pkg/domain-errors"
)

// Service exposes the read side of the audit log: an ordered-by-id scan.
// Writes happen inside ledger and reporting transactions, never here, so the
// log stays append-only by construction.
type Service struct {
	tx state.Tx
}

func NewService(tx state.Tx) *Service {
	return &Service{tx: tx}
}

// List returns entries with id > afterID in ascending id order, at most limit
// entries (no limit when limit <= 0).
func (s *Service) List(ctx context.Context, afterID uint64, limit int) ([]domain.AuditEntry, error) {
	var entries []domain.AuditEntry
	err := s.tx.RunInTx(ctx, func(st state.Store) error {
		var err error
		entries, err = st.ListAudit(ctx, afterID, limit)
		return err
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeTimeout) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list audit entries")
	}
	return entries, nil
}
