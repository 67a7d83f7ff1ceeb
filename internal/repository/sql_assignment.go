package repository

import (
	"context"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// SQLAssignmentRepo stores the task_assignments relation.
type SQLAssignmentRepo struct {
	db db.DBTX
}

func NewSQLAssignmentRepo(db db.DBTX) *SQLAssignmentRepo {
	return &SQLAssignmentRepo{db: db}
}

func (r *SQLAssignmentRepo) Create(ctx context.Context, a *domain.TaskAssignment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_assignments (id, task_id, user_id, role_in_task) VALUES (?, ?, ?, ?)`,
		a.ID, a.TaskID, a.UserID, a.RoleInTask)
	return classify("inserting task assignment", err)
}

func (r *SQLAssignmentRepo) DeleteByTask(ctx context.Context, taskID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_assignments WHERE task_id = ?`, taskID)
	return classify("deleting task assignments", err)
}

func (r *SQLAssignmentRepo) ListUserIDs(ctx context.Context, taskID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM task_assignments WHERE task_id = ? ORDER BY user_id`, taskID)
	if err != nil {
		return nil, classify("listing task assignments", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classify("scanning task assignment", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating task assignments", err)
	}
	return ids, nil
}

func (r *SQLAssignmentRepo) ListAssignees(ctx context.Context, taskIDs []string) (map[string][]*domain.User, error) {
	out := make(map[string][]*domain.User, len(taskIDs))
	if len(taskIDs) == 0 {
		return out, nil
	}
	query := `SELECT a.task_id, u.id, u.name, u.email, u.role, u.company_id, u.cost_rate, u.billable_rate,
			u.avatar_url, u.created_at, u.updated_at, COALESCE(c.name, '')
		FROM task_assignments a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN companies c ON c.id = u.company_id
		WHERE a.task_id IN (` + placeholders(len(taskIDs)) + `)
		ORDER BY u.name`
	rows, err := r.db.QueryContext(ctx, query, stringArgs(taskIDs)...)
	if err != nil {
		return nil, classify("listing assignees", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID string
		u, err := scanUser(prefixScanner{rows, &taskID})
		if err != nil {
			return nil, classify("scanning assignee", err)
		}
		out[taskID] = append(out[taskID], u)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating assignees", err)
	}
	return out, nil
}

// prefixScanner scans one leading column before handing the rest to a
// row scanner.
type prefixScanner struct {
	s      scanner
	prefix any
}

func (p prefixScanner) Scan(dest ...any) error {
	return p.s.Scan(append([]any{p.prefix}, dest...)...)
}
