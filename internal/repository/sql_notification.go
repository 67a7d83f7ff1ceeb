package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// SQLNotificationRepo implements NotificationRepo.
type SQLNotificationRepo struct {
	db db.DBTX
}

func NewSQLNotificationRepo(db db.DBTX) *SQLNotificationRepo {
	return &SQLNotificationRepo{db: db}
}

const notificationColumns = `id, user_id, title, message, type, link, is_read, created_at`

func (r *SQLNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (` + notificationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Message, string(n.Type), nullableString(n.Link),
		boolToInt(n.Read), formatTimestamp(n.CreatedAt),
	)
	return classify("inserting notification", err)
}

func (r *SQLNotificationRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`
	return r.list(ctx, query, userID, limit)
}

func (r *SQLNotificationRepo) ListSince(ctx context.Context, since time.Time) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE created_at >= ? ORDER BY created_at`
	return r.list(ctx, query, formatTimestamp(since))
}

func (r *SQLNotificationRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("listing notifications", err)
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		var typ, createdAt string
		var link sql.NullString
		var read int
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &typ, &link, &read, &createdAt); err != nil {
			return nil, classify("scanning notification", err)
		}
		n.Type = domain.NotificationType(typ)
		n.Link = stringPtr(link)
		n.Read = intToBool(read)
		if n.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating notifications", err)
	}
	return out, nil
}

func (r *SQLNotificationRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID).Scan(&n)
	if err != nil {
		return 0, classify("counting unread notifications", err)
	}
	return n, nil
}

func (r *SQLNotificationRepo) ListUnreadIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM notifications WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return nil, classify("listing unread notifications", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classify("scanning notification id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating unread notifications", err)
	}
	return ids, nil
}

// MarkRead flags the given notifications as read. No IDs is a no-op.
func (r *SQLNotificationRepo) MarkRead(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE notifications SET is_read = 1 WHERE id IN (` + placeholders(len(ids)) + `)`
	_, err := r.db.ExecContext(ctx, query, stringArgs(ids)...)
	return classify("marking notifications read", err)
}
