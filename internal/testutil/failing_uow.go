package testutil

import (
	"context"
	"database/sql"
	"sync"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
)

// FailOnNthExecUoW runs real SQLite transactions but makes the FailOn-th
// statement executed inside each one return Err, so multi-step writes can
// be interrupted between steps. Reads are not counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	inner := db.NewUnitOfWork(u.DB, db.DriverSQLite)
	return inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &execCounter{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type execCounter struct {
	db.DBTX
	mu     sync.Mutex
	n      int32
	failOn int32
	err    error
}

func (c *execCounter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.mu.Lock()
	c.n++
	fail := c.n == c.failOn
	c.mu.Unlock()
	if fail {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
