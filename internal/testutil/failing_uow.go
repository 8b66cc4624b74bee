package testutil

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"

	"github.com/alexanderramin/degreeplan/internal/db"
)

// FailOnNthExecUoW runs each unit of work in a real transaction whose
// FailOn-th write returns Err. Reads are never counted. Use it to prove a
// multi-write use case leaves no partial rows behind.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) (err error) {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, ignoreDone(tx.Rollback()))
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, &faultyWrites{DBTX: tx, trip: u.FailOn, err: u.Err})
}

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

// faultyWrites delegates to the transaction until the trip-th ExecContext.
type faultyWrites struct {
	db.DBTX
	writes atomic.Int32
	trip   int32
	err    error
}

func (f *faultyWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.trip {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
