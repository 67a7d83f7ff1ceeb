package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// SQLDeliverableRepo implements DeliverableRepo. Reads join task, project,
// company, creator and approver names.
type SQLDeliverableRepo struct {
	db db.DBTX
}

func NewSQLDeliverableRepo(db db.DBTX) *SQLDeliverableRepo {
	return &SQLDeliverableRepo{db: db}
}

const deliverableSelect = `SELECT d.id, d.task_id, d.name, d.description, d.type, d.version, d.file_url, d.file_name,
		d.file_size, d.status, d.due_date, d.approved_at, d.client_comments, d.approved_by, d.created_by,
		d.created_at, d.updated_at,
		COALESCE(t.name, ''), COALESCE(p.name, ''), COALESCE(c.name, ''), COALESCE(cu.name, ''), COALESCE(au.name, '')
	FROM deliverables d
	LEFT JOIN tasks t ON t.id = d.task_id
	LEFT JOIN projects p ON p.id = t.project_id
	LEFT JOIN companies c ON c.id = p.company_id
	LEFT JOIN users cu ON cu.id = d.created_by
	LEFT JOIN users au ON au.id = d.approved_by`

func (r *SQLDeliverableRepo) Create(ctx context.Context, d *domain.Deliverable) error {
	query := `INSERT INTO deliverables (id, task_id, name, description, type, version, file_url, file_name, file_size,
		status, due_date, approved_at, client_comments, approved_by, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.TaskID, d.Name, nullableString(d.Description), string(d.Type), d.Version,
		nullableString(d.FileURL), nullableString(d.FileName), nullableInt64(d.FileSize),
		string(d.Status), nullableTimeToString(d.DueDate, dateLayout),
		nullableTimeToString(d.ApprovedAt, timestampLayout), nullableString(d.ClientComments),
		nullableString(d.ApprovedBy), nullableString(d.CreatedBy),
		formatTimestamp(d.CreatedAt), formatTimestamp(d.UpdatedAt),
	)
	return classify("inserting deliverable", err)
}

func (r *SQLDeliverableRepo) GetByID(ctx context.Context, id string) (*domain.Deliverable, error) {
	d, err := scanDeliverable(r.db.QueryRowContext(ctx, deliverableSelect+` WHERE d.id = ?`, id))
	if err != nil {
		return nil, classifyRow("deliverable", "scanning deliverable", err)
	}
	return d, nil
}

// List returns deliverables newest first.
func (r *SQLDeliverableRepo) List(ctx context.Context, q DeliverableQuery) ([]*domain.Deliverable, error) {
	var where []string
	var args []any
	if q.Status != "" {
		where = append(where, `d.status = ?`)
		args = append(args, string(q.Status))
	}
	if q.TaskID != "" {
		where = append(where, `d.task_id = ?`)
		args = append(args, q.TaskID)
	}
	query := deliverableSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY d.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("listing deliverables", err)
	}
	defer rows.Close()

	var out []*domain.Deliverable
	for rows.Next() {
		d, err := scanDeliverable(rows)
		if err != nil {
			return nil, classify("scanning deliverable row", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating deliverables", err)
	}
	return out, nil
}

func (r *SQLDeliverableRepo) Update(ctx context.Context, d *domain.Deliverable) error {
	query := `UPDATE deliverables SET name = ?, description = ?, type = ?, version = ?, file_url = ?, file_name = ?,
		file_size = ?, status = ?, due_date = ?, approved_at = ?, client_comments = ?, approved_by = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Name, nullableString(d.Description), string(d.Type), d.Version,
		nullableString(d.FileURL), nullableString(d.FileName), nullableInt64(d.FileSize),
		string(d.Status), nullableTimeToString(d.DueDate, dateLayout),
		nullableTimeToString(d.ApprovedAt, timestampLayout), nullableString(d.ClientComments),
		nullableString(d.ApprovedBy), formatTimestamp(d.UpdatedAt), d.ID,
	)
	if err != nil {
		return classify("updating deliverable", err)
	}
	return requireAffected("deliverable", res)
}

func (r *SQLDeliverableRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM deliverables WHERE id = ?`, id)
	if err != nil {
		return classify("deleting deliverable", err)
	}
	return requireAffected("deliverable", res)
}

func scanDeliverable(s scanner) (*domain.Deliverable, error) {
	var d domain.Deliverable
	var typ, status, createdAt, updatedAt string
	var description, fileURL, fileName, dueDate, approvedAt, comments, approvedBy, createdBy sql.NullString
	var fileSize sql.NullInt64

	if err := s.Scan(&d.ID, &d.TaskID, &d.Name, &description, &typ, &d.Version, &fileURL, &fileName,
		&fileSize, &status, &dueDate, &approvedAt, &comments, &approvedBy, &createdBy,
		&createdAt, &updatedAt,
		&d.TaskName, &d.ProjectName, &d.CompanyName, &d.CreatorName, &d.ApproverName); err != nil {
		return nil, err
	}

	d.Type = domain.DeliverableType(typ)
	d.Status = domain.DeliverableStatus(status)
	d.Description = stringPtr(description)
	d.FileURL = stringPtr(fileURL)
	d.FileName = stringPtr(fileName)
	if fileSize.Valid {
		size := fileSize.Int64
		d.FileSize = &size
	}
	d.DueDate = parseNullableTime(dueDate, dateLayout)
	d.ApprovedAt = parseNullableTime(approvedAt, timestampLayout)
	d.ClientComments = stringPtr(comments)
	d.ApprovedBy = stringPtr(approvedBy)
	d.CreatedBy = stringPtr(createdBy)

	var err error
	if d.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if d.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &d, nil
}
