package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// DBTX is the common interface satisfied by both *sql.DB and *sql.Tx.
// Repository implementations depend on this interface instead of the
// concrete *sql.DB, enabling transactional composition.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time verification that *sql.DB and *sql.Tx satisfy DBTX.
var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// Bind adapts q to the placeholder style of driver. Queries are written with
// "?" placeholders; Postgres needs "$1, $2, ...".
func Bind(driver string, q DBTX) DBTX {
	if NormalizeDriver(driver) != DriverPostgres {
		return q
	}
	if _, ok := q.(dollarBinder); ok {
		return q
	}
	return dollarBinder{q}
}

type dollarBinder struct {
	DBTX
}

func (b dollarBinder) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return b.DBTX.ExecContext(ctx, Rebind(query), args...)
}

func (b dollarBinder) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return b.DBTX.QueryContext(ctx, Rebind(query), args...)
}

func (b dollarBinder) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return b.DBTX.QueryRowContext(ctx, Rebind(query), args...)
}

// Rebind rewrites "?" placeholders as "$n". Question marks inside single
// quoted literals are left alone.
func Rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			sb.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
