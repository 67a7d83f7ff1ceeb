package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// SQLCompanyRepo implements CompanyRepo over a db.DBTX.
type SQLCompanyRepo struct {
	db db.DBTX
}

// NewSQLCompanyRepo creates a new SQLCompanyRepo.
func NewSQLCompanyRepo(db db.DBTX) *SQLCompanyRepo {
	return &SQLCompanyRepo{db: db}
}

const companyColumns = `id, name, email, phone, address, created_at, updated_at`

func (r *SQLCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	query := `INSERT INTO companies (` + companyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name,
		nullableString(c.Email), nullableString(c.Phone), nullableString(c.Address),
		formatTimestamp(c.CreatedAt), formatTimestamp(c.UpdatedAt),
	)
	return classify("inserting company", err)
}

func (r *SQLCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)
	c, err := scanCompany(row)
	if err != nil {
		return nil, classifyRow("company", "scanning company", err)
	}
	return c, nil
}

func (r *SQLCompanyRepo) List(ctx context.Context) ([]*domain.Company, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, classify("listing companies", err)
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, classify("scanning company row", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating companies", err)
	}
	return companies, nil
}

func (r *SQLCompanyRepo) Update(ctx context.Context, c *domain.Company) error {
	query := `UPDATE companies SET name = ?, email = ?, phone = ?, address = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, nullableString(c.Email), nullableString(c.Phone), nullableString(c.Address),
		formatTimestamp(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return classify("updating company", err)
	}
	return requireAffected("company", res)
}

func (r *SQLCompanyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return classify("deleting company", err)
	}
	return requireAffected("company", res)
}

func scanCompany(s scanner) (*domain.Company, error) {
	var c domain.Company
	var email, phone, address sql.NullString
	var createdAt, updatedAt string
	if err := s.Scan(&c.ID, &c.Name, &email, &phone, &address, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.Email, c.Phone, c.Address = stringPtr(email), stringPtr(phone), stringPtr(address)

	var err error
	if c.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if c.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &c, nil
}
