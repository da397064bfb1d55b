package state

import (
	"context"
	"sync"
	"time"

	dErrors "medledger/pkg/domain-errors"
)

// defaultTxTimeout bounds how long a single logical call may hold the
// transaction boundary.
const defaultTxTimeout = 5 * time.Second

// MemoryTx serializes whole logical calls behind one mutex, matching the
// strictly serial reference execution model: two concurrent grants can never
// observe an inconsistent counter or produce a duplicate identifier.
type MemoryTx struct {
	mu      sync.Mutex
	store   Store
	timeout time.Duration
}

func NewMemoryTx(store Store) *MemoryTx {
	return &MemoryTx{store: store}
}

func (t *MemoryTx) RunInTx(ctx context.Context, fn func(store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Check again after acquiring the lock.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(t.store)
}
