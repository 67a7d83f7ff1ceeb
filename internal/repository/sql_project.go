package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// SQLProjectRepo implements ProjectRepo. Reads join the company name.
type SQLProjectRepo struct {
	db db.DBTX
}

// NewSQLProjectRepo creates a new SQLProjectRepo.
func NewSQLProjectRepo(db db.DBTX) *SQLProjectRepo {
	return &SQLProjectRepo{db: db}
}

const projectSelect = `SELECT p.id, p.name, p.description, p.company_id, p.status, p.start_date, p.end_date,
		p.budget, p.created_at, p.updated_at, COALESCE(c.name, '')
	FROM projects p LEFT JOIN companies c ON c.id = p.company_id`

func (r *SQLProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, name, description, company_id, status, start_date, end_date, budget, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullableString(p.Description),
		nullableString(p.CompanyID),
		string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		nullableFloat(p.Budget),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	return classify("inserting project", err)
}

func (r *SQLProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, projectSelect+` WHERE p.id = ?`, id))
	if err != nil {
		return nil, classifyRow("project", "scanning project", err)
	}
	return p, nil
}

// List returns projects newest first, optionally restricted to one status.
func (r *SQLProjectRepo) List(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error) {
	query := projectSelect
	var args []any
	if status != "" {
		query += ` WHERE p.status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("listing projects", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, classify("scanning project row", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating projects", err)
	}
	return projects, nil
}

func (r *SQLProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, description = ?, company_id = ?, status = ?, start_date = ?, end_date = ?,
		budget = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		nullableString(p.Description),
		nullableString(p.CompanyID),
		string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		nullableFloat(p.Budget),
		formatTimestamp(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return classify("updating project", err)
	}
	return requireAffected("project", res)
}

func (r *SQLProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return classify("deleting project", err)
	}
	return requireAffected("project", res)
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	var status, createdAt, updatedAt string
	var description, companyID, startDate, endDate sql.NullString
	var budget sql.NullFloat64

	if err := s.Scan(&p.ID, &p.Name, &description, &companyID, &status, &startDate, &endDate,
		&budget, &createdAt, &updatedAt, &p.CompanyName); err != nil {
		return nil, err
	}

	p.Status = domain.ProjectStatus(status)
	p.Description = stringPtr(description)
	p.CompanyID = stringPtr(companyID)
	p.StartDate = parseNullableTime(startDate, dateLayout)
	p.EndDate = parseNullableTime(endDate, dateLayout)
	if budget.Valid {
		b := budget.Float64
		p.Budget = &b
	}

	var err error
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
