package db

import (
	"context"
	"database/sql"
)

// DBTX is what repositories query through. Both the pool and an open
// transaction satisfy it, so a repository built inside WithinTx joins the
// caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc is the body of a unit of work.
type TxFunc func(ctx context.Context, tx DBTX) error
