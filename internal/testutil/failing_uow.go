package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/jmoiron/sqlx"
)

// FailingUoW runs transactions like the real unit of work but fails the
// FailOn-th write inside each one with Err. Writes are counted from 1 across
// ExecContext and NamedExecContext; reads are untouched.
type FailingUoW struct {
	DB     *sqlx.DB
	FailOn int
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &writeCounter{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type writeCounter struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (w *writeCounter) tick() error {
	w.writes++
	if w.writes == w.failOn {
		return w.err
	}
	return nil
}

func (w *writeCounter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if err := w.tick(); err != nil {
		return nil, err
	}
	return w.DBTX.ExecContext(ctx, query, args...)
}

func (w *writeCounter) NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error) {
	if err := w.tick(); err != nil {
		return nil, err
	}
	return w.DBTX.NamedExecContext(ctx, query, arg)
}
