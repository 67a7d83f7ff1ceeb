package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// SQLUserRepo implements UserRepo. Reads join the company name.
type SQLUserRepo struct {
	db db.DBTX
}

func NewSQLUserRepo(db db.DBTX) *SQLUserRepo {
	return &SQLUserRepo{db: db}
}

const userSelect = `SELECT u.id, u.name, u.email, u.role, u.company_id, u.cost_rate, u.billable_rate,
		u.avatar_url, u.created_at, u.updated_at, COALESCE(c.name, '')
	FROM users u LEFT JOIN companies c ON c.id = u.company_id`

func (r *SQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, name, email, role, company_id, cost_rate, billable_rate, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, normalizeEmail(u.Email), string(u.Role), nullableString(u.CompanyID),
		u.CostRate, u.BillableRate, nullableString(u.AvatarURL),
		formatTimestamp(u.CreatedAt), formatTimestamp(u.UpdatedAt),
	)
	return classify("inserting user", err)
}

func (r *SQLUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE u.id = ?`, id))
	if err != nil {
		return nil, classifyRow("user", "scanning user", err)
	}
	return u, nil
}

func (r *SQLUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, userSelect+` ORDER BY u.name`)
}

// ListAssignable lists users that may be assigned to tasks (every role but client).
func (r *SQLUserRepo) ListAssignable(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, userSelect+` WHERE u.role <> ? ORDER BY u.name`, string(domain.RoleClient))
}

func (r *SQLUserRepo) list(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("listing users", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, classify("scanning user row", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating users", err)
	}
	return users, nil
}

func (r *SQLUserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name = ?, role = ?, company_id = ?, cost_rate = ?, billable_rate = ?, avatar_url = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.Name, string(u.Role), nullableString(u.CompanyID), u.CostRate, u.BillableRate,
		nullableString(u.AvatarURL), formatTimestamp(u.UpdatedAt), u.ID,
	)
	if err != nil {
		return classify("updating user", err)
	}
	return requireAffected("user", res)
}

func (r *SQLUserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return classify("deleting user", err)
	}
	return requireAffected("user", res)
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	var role, createdAt, updatedAt string
	var companyID, avatarURL sql.NullString
	var costRate, billableRate sql.NullFloat64
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &role, &companyID, &costRate, &billableRate,
		&avatarURL, &createdAt, &updatedAt, &u.CompanyName); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.CompanyID = stringPtr(companyID)
	u.AvatarURL = stringPtr(avatarURL)
	u.CostRate = domain.Float(nullFloat(costRate))
	u.BillableRate = domain.Float(nullFloat(billableRate))

	var err error
	if u.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if u.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &u, nil
}

// nullFloat returns nil for SQL NULL so domain.Float can zero-coalesce it.
func nullFloat(f sql.NullFloat64) any {
	if !f.Valid {
		return nil
	}
	return f.Float64
}
