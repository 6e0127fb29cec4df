package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// Adapter commits plans against a Spanner database.
type Adapter struct {
	client *spanner.Client
}

func NewAdapter(client *spanner.Client) *Adapter {
	return &Adapter{client: client}
}

// Apply atomically commits a plan that needs no reads.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	return a.ReadWrite(ctx, func(ctx context.Context, _ *spanner.ReadWriteTransaction, p *Plan) error {
		p.Add(plan.Mutations()...)
		return nil
	})
}

// ReadWrite runs fn inside a read-write transaction. fn may read through the
// transaction and add mutations to the plan; the plan is buffered and
// committed when fn returns nil. Spanner can re-run fn after an abort, and
// every attempt starts from a fresh plan.
func (a *Adapter) ReadWrite(ctx context.Context, fn func(ctx context.Context, tx *spanner.ReadWriteTransaction, plan *Plan) error) error {
	if a.client == nil {
		return fmt.Errorf("committer: spanner client is nil")
	}

	_, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		plan := NewPlan()
		if err := fn(ctx, tx, plan); err != nil {
			return err
		}
		if plan.IsEmpty() {
			return nil
		}
		return tx.BufferWrite(plan.Mutations())
	})
	return err
}
