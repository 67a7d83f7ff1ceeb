package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are written so they run
// unchanged on SQLite and Postgres.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate column name") ||
		(strings.Contains(msg, "column") && strings.Contains(msg, "already exists"))
}

// Tables lists every table created by Migrate, parents first.
var Tables = []string{
	"companies",
	"identities",
	"users",
	"projects",
	"tasks",
	"task_assignments",
	"time_logs",
	"deliverables",
	"deliverable_versions",
	"invitations",
	"notifications",
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT,
		phone      TEXT,
		address    TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS identities (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'developer'
		              CHECK(role IN ('client','advisor','support','developer','superadmin')),
		company_id    TEXT REFERENCES companies(id) ON DELETE SET NULL,
		cost_rate     DOUBLE PRECISION NOT NULL DEFAULT 0,
		billable_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		avatar_url    TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_company ON users(company_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		company_id  TEXT REFERENCES companies(id) ON DELETE SET NULL,
		status      TEXT NOT NULL DEFAULT 'pending'
		            CHECK(status IN ('pending','in_progress','paused','completed')),
		start_date  TEXT,
		end_date    TEXT,
		budget      DOUBLE PRECISION,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_company ON projects(company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		description     TEXT,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		responsible_id  TEXT REFERENCES users(id) ON DELETE SET NULL,
		priority        TEXT NOT NULL DEFAULT 'medium'
		                CHECK(priority IN ('low','medium','high')),
		status          TEXT NOT NULL DEFAULT 'pending'
		                CHECK(status IN ('pending','in_progress','completed')),
		estimated_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		real_hours      DOUBLE PRECISION NOT NULL DEFAULT 0,
		due_date        TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	`CREATE TABLE IF NOT EXISTS task_assignments (
		id           TEXT PRIMARY KEY,
		task_id      TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_in_task TEXT NOT NULL DEFAULT 'collaborator',
		UNIQUE (task_id, user_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_assignments_user ON task_assignments(user_id)`,

	`CREATE TABLE IF NOT EXISTS time_logs (
		id          TEXT PRIMARY KEY,
		task_id     TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		user_id     TEXT REFERENCES users(id) ON DELETE SET NULL,
		log_date    TEXT NOT NULL,
		hours       DOUBLE PRECISION NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_logs_task ON time_logs(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_logs_created ON time_logs(created_at)`,

	`CREATE TABLE IF NOT EXISTS deliverables (
		id              TEXT PRIMARY KEY,
		task_id         TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		description     TEXT,
		type            TEXT NOT NULL DEFAULT 'document'
		                CHECK(type IN ('document','code','design','manual','other')),
		version         TEXT NOT NULL DEFAULT '1.0',
		file_url        TEXT,
		file_name       TEXT,
		file_size       BIGINT,
		status          TEXT NOT NULL DEFAULT 'pending'
		                CHECK(status IN ('pending','in_review','approved','rejected','in_correction')),
		due_date        TEXT,
		approved_at     TEXT,
		client_comments TEXT,
		approved_by     TEXT REFERENCES users(id) ON DELETE SET NULL,
		created_by      TEXT REFERENCES users(id) ON DELETE SET NULL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_deliverables_task ON deliverables(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_deliverables_status ON deliverables(status)`,

	`CREATE TABLE IF NOT EXISTS deliverable_versions (
		id             TEXT PRIMARY KEY,
		deliverable_id TEXT NOT NULL REFERENCES deliverables(id) ON DELETE CASCADE,
		version        TEXT NOT NULL,
		file_url       TEXT NOT NULL,
		file_name      TEXT NOT NULL,
		file_size      BIGINT NOT NULL DEFAULT 0,
		notes          TEXT NOT NULL DEFAULT '',
		uploaded_by    TEXT REFERENCES users(id) ON DELETE SET NULL,
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_deliverable_versions_deliverable ON deliverable_versions(deliverable_id)`,

	`CREATE TABLE IF NOT EXISTS invitations (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL,
		role          TEXT NOT NULL
		              CHECK(role IN ('client','advisor','support','developer','superadmin')),
		company_id    TEXT REFERENCES companies(id) ON DELETE SET NULL,
		cost_rate     DOUBLE PRECISION NOT NULL DEFAULT 0,
		billable_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		status        TEXT NOT NULL DEFAULT 'pending'
		              CHECK(status IN ('pending','sent','accepted','cancelled','expired')),
		identity_id   TEXT,
		invited_at    TEXT NOT NULL,
		accepted_at   TEXT,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_invitations_email ON invitations(email)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		message    TEXT NOT NULL DEFAULT '',
		type       TEXT NOT NULL DEFAULT 'info'
		           CHECK(type IN ('assignment','status_change','comment','mention','info')),
		link       TEXT,
		is_read    INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, is_read)`,
}
