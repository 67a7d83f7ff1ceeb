package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// classify wraps a driver error as a remote operation failure, carrying the
// Postgres error code when one can be determined. SQLite constraint messages
// are mapped onto the equivalent Postgres codes.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf("%s: %w", op, err)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return domain.Remote(pgErr.Code, wrapped)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return domain.Remote(domain.CodeUniqueViolation, wrapped)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return domain.Remote(domain.CodeForeignKeyViolation, wrapped)
	case strings.Contains(msg, "no such table"):
		return domain.Remote(domain.CodeUndefinedTable, wrapped)
	}
	return domain.Remote("", wrapped)
}

// classifyRow is classify for single-row reads: sql.ErrNoRows becomes NotFound.
func classifyRow(entity, op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Missing(entity)
	}
	return classify(op, err)
}

// requireAffected turns a zero-row update or delete into NotFound.
func requireAffected(entity string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return nil
	}
	if n == 0 {
		return domain.Missing(entity)
	}
	return nil
}
