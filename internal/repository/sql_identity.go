package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// SQLIdentityRepo stores auth identities.
type SQLIdentityRepo struct {
	db db.DBTX
}

func NewSQLIdentityRepo(db db.DBTX) *SQLIdentityRepo {
	return &SQLIdentityRepo{db: db}
}

const identityColumns = `id, email, password_hash, created_at, updated_at`

func (r *SQLIdentityRepo) Create(ctx context.Context, i *domain.Identity) error {
	query := `INSERT INTO identities (` + identityColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID, normalizeEmail(i.Email), i.PasswordHash,
		formatTimestamp(i.CreatedAt), formatTimestamp(i.UpdatedAt),
	)
	return classify("inserting identity", err)
}

func (r *SQLIdentityRepo) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM identities WHERE id = ?`, id)
	i, err := scanIdentity(row)
	if err != nil {
		return nil, classifyRow("identity", "scanning identity", err)
	}
	return i, nil
}

func (r *SQLIdentityRepo) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM identities WHERE email = ?`, normalizeEmail(email))
	i, err := scanIdentity(row)
	if err != nil {
		return nil, classifyRow("identity", "scanning identity", err)
	}
	return i, nil
}

func (r *SQLIdentityRepo) UpdatePassword(ctx context.Context, id, hash string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE identities SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, formatTimestamp(at), id)
	if err != nil {
		return classify("updating password", err)
	}
	return requireAffected("identity", res)
}

func scanIdentity(s scanner) (*domain.Identity, error) {
	var i domain.Identity
	var createdAt, updatedAt string
	if err := s.Scan(&i.ID, &i.Email, &i.PasswordHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if i.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if i.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &i, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
