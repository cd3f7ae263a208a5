package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so query code can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxRunner manages database transactions.
// The service layer owns transaction boundaries and hands the tx-bound
// DBTX to repository operations.
type TxRunner struct {
	database *sql.DB
}

// NewTxRunner creates a new TxRunner instance.
func NewTxRunner(database *sql.DB) *TxRunner {
	return &TxRunner{database: database}
}

// WithTx executes fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise it is
// committed.
//
// Usage example:
//
//	err := txRunner.WithTx(ctx, func(tx pkgdb.DBTX) error {
//	    owner, err := queries(tx).LockContractOwner(ctx, id)
//	    if err != nil {
//	        return err
//	    }
//	    _, err = queries(tx).DeleteContract(ctx, id, owner)
//	    return err
//	})
func (r *TxRunner) WithTx(ctx context.Context, fn func(tx DBTX) error) error {
	_, err := WithTxResult(ctx, r, func(tx DBTX) (struct{}, error) {
		return struct{}{}, fn(tx)
	})
	return err
}

// WithTxResult executes fn within a database transaction and returns its
// result.
func WithTxResult[T any](ctx context.Context, r *TxRunner, fn func(tx DBTX) (T, error)) (T, error) {
	var result T

	tx, err := r.database.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin transaction: %w", err)
	}

	result, err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return result, fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return result, err
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("commit transaction: %w", err)
	}

	return result, nil
}

// DB returns the underlying connection for non-transactional reads.
func (r *TxRunner) DB() DBTX {
	return r.database
}
