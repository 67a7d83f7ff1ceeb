package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// SQLTimeLogRepo implements TimeLogRepo.
type SQLTimeLogRepo struct {
	db db.DBTX
}

func NewSQLTimeLogRepo(db db.DBTX) *SQLTimeLogRepo {
	return &SQLTimeLogRepo{db: db}
}

func (r *SQLTimeLogRepo) Create(ctx context.Context, l *domain.TimeLog) error {
	query := `INSERT INTO time_logs (id, task_id, user_id, log_date, hours, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.TaskID, nullableString(l.UserID), l.Date.Format(dateLayout), l.Hours, l.Description,
		formatTimestamp(l.CreatedAt),
	)
	return classify("inserting time log", err)
}

// ListEntries joins each log with its task and with the logging user's
// rates. Missing users or rates come back as zero.
func (r *SQLTimeLogRepo) ListEntries(ctx context.Context, limit int) ([]domain.TimeLogEntry, error) {
	query := `SELECT l.id, l.task_id, l.user_id, l.log_date, l.hours, l.description, l.created_at,
			COALESCE(t.name, ''), COALESCE(t.project_id, ''), COALESCE(u.name, ''), u.cost_rate, u.billable_rate
		FROM time_logs l
		LEFT JOIN tasks t ON t.id = l.task_id
		LEFT JOIN users u ON u.id = l.user_id
		ORDER BY l.created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("listing time logs", err)
	}
	defer rows.Close()

	var entries []domain.TimeLogEntry
	for rows.Next() {
		var log domain.TimeLog
		var userID sql.NullString
		var logDate, createdAt, taskName, projectID, userName string
		var hours, costRate, billableRate sql.NullFloat64
		if err := rows.Scan(&log.ID, &log.TaskID, &userID, &logDate, &hours, &log.Description, &createdAt,
			&taskName, &projectID, &userName, &costRate, &billableRate); err != nil {
			return nil, classify("scanning time log", err)
		}
		log.UserID = stringPtr(userID)
		if log.Date, err = time.Parse(dateLayout, logDate); err != nil {
			return nil, fmt.Errorf("parsing log_date: %w", err)
		}
		if log.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		entry := domain.NewTimeLogEntry(log, nullFloat(hours), nullFloat(costRate), nullFloat(billableRate))
		entry.TaskName = taskName
		entry.ProjectID = projectID
		entry.UserName = userName
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating time logs", err)
	}
	return entries, nil
}
