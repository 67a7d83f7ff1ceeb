package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// SQLTaskRepo implements TaskRepo. Reads join the project name.
type SQLTaskRepo struct {
	db db.DBTX
}

func NewSQLTaskRepo(db db.DBTX) *SQLTaskRepo {
	return &SQLTaskRepo{db: db}
}

const taskSelect = `SELECT t.id, t.name, t.description, t.project_id, t.responsible_id, t.priority, t.status,
		t.estimated_hours, t.real_hours, t.due_date, t.created_at, t.updated_at, COALESCE(p.name, '')
	FROM tasks t LEFT JOIN projects p ON p.id = t.project_id`

func (r *SQLTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, name, description, project_id, responsible_id, priority, status,
		estimated_hours, real_hours, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Name, nullableString(t.Description), t.ProjectID, nullableString(t.ResponsibleID),
		string(t.Priority), string(t.Status), t.EstimatedHours, t.RealHours,
		nullableTimeToString(t.DueDate, dateLayout),
		formatTimestamp(t.CreatedAt), formatTimestamp(t.UpdatedAt),
	)
	return classify("inserting task", err)
}

func (r *SQLTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = ?`, id))
	if err != nil {
		return nil, classifyRow("task", "scanning task", err)
	}
	return t, nil
}

// List returns tasks newest first.
func (r *SQLTaskRepo) List(ctx context.Context, q TaskQuery) ([]*domain.Task, error) {
	var where []string
	var args []any
	if q.ProjectID != "" {
		where = append(where, `t.project_id = ?`)
		args = append(args, q.ProjectID)
	}
	if q.Status != "" {
		where = append(where, `t.status = ?`)
		args = append(args, string(q.Status))
	}
	if q.ExcludeCompleted {
		where = append(where, `t.status <> ?`)
		args = append(args, string(domain.TaskCompleted))
	}
	query := taskSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("listing tasks", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, classify("scanning task row", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating tasks", err)
	}
	return tasks, nil
}

func (r *SQLTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET name = ?, description = ?, project_id = ?, responsible_id = ?, priority = ?, status = ?,
		estimated_hours = ?, due_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name, nullableString(t.Description), t.ProjectID, nullableString(t.ResponsibleID),
		string(t.Priority), string(t.Status), t.EstimatedHours,
		nullableTimeToString(t.DueDate, dateLayout), formatTimestamp(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return classify("updating task", err)
	}
	return requireAffected("task", res)
}

// AddRealHours increments the task's accumulated real hours.
func (r *SQLTaskRepo) AddRealHours(ctx context.Context, id string, hours float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET real_hours = COALESCE(real_hours, 0) + ? WHERE id = ?`, hours, id)
	if err != nil {
		return classify("incrementing real hours", err)
	}
	return requireAffected("task", res)
}

func (r *SQLTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return classify("deleting task", err)
	}
	return requireAffected("task", res)
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var priority, status, createdAt, updatedAt string
	var description, responsibleID, dueDate sql.NullString
	var estimated, realHours sql.NullFloat64

	if err := s.Scan(&t.ID, &t.Name, &description, &t.ProjectID, &responsibleID, &priority, &status,
		&estimated, &realHours, &dueDate, &createdAt, &updatedAt, &t.ProjectName); err != nil {
		return nil, err
	}

	t.Description = stringPtr(description)
	t.ResponsibleID = stringPtr(responsibleID)
	t.Priority = domain.TaskPriority(priority)
	t.Status = domain.TaskStatus(status)
	t.EstimatedHours = domain.Float(nullFloat(estimated))
	t.RealHours = domain.Float(nullFloat(realHours))
	t.DueDate = parseNullableTime(dueDate, dateLayout)

	var err error
	if t.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
