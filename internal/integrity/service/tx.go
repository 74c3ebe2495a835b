package service

import (
	"context"
	"sync"
)

// MemoryTx is the TxRunner used with the in-memory stores: a coarse lock that
// serializes the upsert-plus-append critical section the way a database
// transaction would. Unit tests and Redis-less development use it; production
// wires the Postgres runner.
type MemoryTx struct {
	mu sync.Mutex
}

// NewMemoryTx constructs a coarse-grained in-memory transaction runner.
func NewMemoryTx() *MemoryTx {
	return &MemoryTx{}
}

func (t *MemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
