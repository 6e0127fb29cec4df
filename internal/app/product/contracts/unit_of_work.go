package contracts

import "context"

// Transactor runs fn inside one atomic unit of work. Everything written
// through the Tx handed to fn commits together or not at all; an error
// returned by fn rolls the unit back and is returned unchanged.
//
// Backends: Spanner read-write transaction (committer.Adapter), *sql.Tx
// (sqlrepo) and a mutex-guarded copy-on-commit map (memrepo).
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the writers that participate in a unit of work.
type Tx interface {
	Products() ProductWriter
	Ledger() LedgerWriter
	Events() EventPublisher
}
