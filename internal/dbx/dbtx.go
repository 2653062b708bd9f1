// Package dbx holds the small database plumbing shared by every repository:
// the DBTX interface that lets one repository type run against either a bare
// connection or a transaction, and a WithTx helper for multi-statement
// operations that must land atomically.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the slice of database/sql that the repositories actually call.
// Both *sql.DB and *sql.Tx satisfy it, so a repository constructed over a
// transaction behaves identically to one constructed over the pool.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// when it returns an error or panics (the panic is rethrown).
//
// Category reordering is the typical caller; every order_index write happens
// against the same transaction:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return categories.NewSQLiteRepository(tx).RenumberOrder(ctx, orderedIDs)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
