package repository

import (
	"context"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

type CompanyRepo interface {
	Create(ctx context.Context, c *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Update(ctx context.Context, c *domain.Company) error
	Delete(ctx context.Context, id string) error
}

type IdentityRepo interface {
	Create(ctx context.Context, i *domain.Identity) error
	GetByID(ctx context.Context, id string) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	UpdatePassword(ctx context.Context, id, hash string, at time.Time) error
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListAssignable(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// TaskQuery narrows task listings. Empty fields do not filter.
type TaskQuery struct {
	ProjectID string
	Status    domain.TaskStatus
	// ExcludeCompleted lists only tasks whose status is not completed.
	ExcludeCompleted bool
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, q TaskQuery) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	AddRealHours(ctx context.Context, id string, hours float64) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.TaskAssignment) error
	DeleteByTask(ctx context.Context, taskID string) error
	ListUserIDs(ctx context.Context, taskID string) ([]string, error)
	// ListAssignees returns the assigned users keyed by task ID.
	ListAssignees(ctx context.Context, taskIDs []string) (map[string][]*domain.User, error)
}

type TimeLogRepo interface {
	Create(ctx context.Context, l *domain.TimeLog) error
	// ListEntries returns logs newest first, joined with task and user data.
	// A limit of zero or less returns every log.
	ListEntries(ctx context.Context, limit int) ([]domain.TimeLogEntry, error)
}

// DeliverableQuery narrows deliverable listings. Empty fields do not filter.
type DeliverableQuery struct {
	Status domain.DeliverableStatus
	TaskID string
}

type DeliverableRepo interface {
	Create(ctx context.Context, d *domain.Deliverable) error
	GetByID(ctx context.Context, id string) (*domain.Deliverable, error)
	List(ctx context.Context, q DeliverableQuery) ([]*domain.Deliverable, error)
	// Update writes the workflow fields and the current file reference.
	Update(ctx context.Context, d *domain.Deliverable) error
	Delete(ctx context.Context, id string) error
}

type DeliverableVersionRepo interface {
	Create(ctx context.Context, v *domain.DeliverableVersion) error
	ListByDeliverable(ctx context.Context, deliverableID string) ([]*domain.DeliverableVersion, error)
}

type InvitationRepo interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetByID(ctx context.Context, id string) (*domain.Invitation, error)
	ListOpen(ctx context.Context) ([]*domain.Invitation, error)
	FindOpenByEmail(ctx context.Context, email string) (*domain.Invitation, error)
	Update(ctx context.Context, inv *domain.Invitation) error
	Delete(ctx context.Context, id string) error
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	// ListSince returns notifications created at or after since, oldest first.
	ListSince(ctx context.Context, since time.Time) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	ListUnreadIDs(ctx context.Context, userID string) ([]string, error)
	MarkRead(ctx context.Context, ids ...string) error
}
