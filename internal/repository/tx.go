package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// txKey carries the open pgx.Tx through the context during a unit of work.
type txKey struct{}

// TxManager runs units of work against the pool. Every repository call made
// with the context it passes to fn joins the same transaction, so an early
// return from fn discards all staged writes.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager returns a TxManager backed by the given pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithTransaction begins a transaction, binds it to the context, and runs fn.
// The transaction commits only when fn returns nil; any error (or panic)
// rolls it back.
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	// Rollback after a successful commit is a no-op (pgx.ErrTxClosed).
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	return errors.Wrap(tx.Commit(ctx), "commit transaction")
}

// queryEngine returns the transaction bound to ctx, or the pool when no
// transaction is open.
func queryEngine(ctx context.Context, pool *pgxpool.Pool) DB {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}
