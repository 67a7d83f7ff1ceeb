package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// SQLDeliverableVersionRepo stores the append-only upload history.
type SQLDeliverableVersionRepo struct {
	db db.DBTX
}

func NewSQLDeliverableVersionRepo(db db.DBTX) *SQLDeliverableVersionRepo {
	return &SQLDeliverableVersionRepo{db: db}
}

func (r *SQLDeliverableVersionRepo) Create(ctx context.Context, v *domain.DeliverableVersion) error {
	query := `INSERT INTO deliverable_versions (id, deliverable_id, version, file_url, file_name, file_size, notes,
		uploaded_by, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.DeliverableID, v.Version, v.FileURL, v.FileName, v.FileSize, v.Notes,
		nullableString(v.UploadedBy), formatTimestamp(v.CreatedAt),
	)
	return classify("inserting deliverable version", err)
}

// ListByDeliverable returns the history newest first.
func (r *SQLDeliverableVersionRepo) ListByDeliverable(ctx context.Context, deliverableID string) ([]*domain.DeliverableVersion, error) {
	query := `SELECT v.id, v.deliverable_id, v.version, v.file_url, v.file_name, v.file_size, v.notes,
			v.uploaded_by, v.created_at, COALESCE(u.name, '')
		FROM deliverable_versions v
		LEFT JOIN users u ON u.id = v.uploaded_by
		WHERE v.deliverable_id = ?
		ORDER BY v.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, deliverableID)
	if err != nil {
		return nil, classify("listing deliverable versions", err)
	}
	defer rows.Close()

	var out []*domain.DeliverableVersion
	for rows.Next() {
		var v domain.DeliverableVersion
		var uploadedBy sql.NullString
		var createdAt string
		if err := rows.Scan(&v.ID, &v.DeliverableID, &v.Version, &v.FileURL, &v.FileName, &v.FileSize, &v.Notes,
			&uploadedBy, &createdAt, &v.UploaderName); err != nil {
			return nil, classify("scanning deliverable version", err)
		}
		v.UploadedBy = stringPtr(uploadedBy)
		if v.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating deliverable versions", err)
	}
	return out, nil
}
