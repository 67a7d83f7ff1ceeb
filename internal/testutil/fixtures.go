package testutil

import (
	"sync/atomic"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/google/uuid"
)

// fixtureClock hands out strictly increasing creation times so that
// newest-first orderings are deterministic within a test.
var fixtureClock atomic.Int64

func nextFixtureTime() time.Time {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(fixtureClock.Add(1)) * time.Millisecond)
}

// Company options
type CompanyOption func(*domain.Company)

func WithCompanyEmail(email string) CompanyOption {
	return func(c *domain.Company) {
		c.Email = &email
	}
}

func NewTestCompany(name string, opts ...CompanyOption) *domain.Company {
	now := nextFixtureTime()
	c := &domain.Company{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// User options
type UserOption func(*domain.User)

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithRates(cost, billable float64) UserOption {
	return func(u *domain.User) {
		u.CostRate = cost
		u.BillableRate = billable
	}
}

func WithUserCompany(companyID string) UserOption {
	return func(u *domain.User) {
		u.CompanyID = &companyID
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	now := nextFixtureTime()
	id := uuid.New().String()
	u := &domain.User{
		ID:        id,
		Name:      name,
		Email:     id[:8] + "@example.com",
		Role:      domain.RoleDeveloper,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectCompany(companyID string) ProjectOption {
	return func(p *domain.Project) {
		p.CompanyID = &companyID
	}
}

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := nextFixtureTime()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.ProjectPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithEstimatedHours(h float64) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedHours = h
	}
}

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = &d
	}
}

func NewTestTask(projectID, name string, opts ...TaskOption) *domain.Task {
	now := nextFixtureTime()
	t := &domain.Task{
		ID:             uuid.New().String(),
		Name:           name,
		ProjectID:      projectID,
		Priority:       domain.PriorityMedium,
		Status:         domain.TaskPending,
		EstimatedHours: 8,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestTimeLog(taskID string, userID *string, hours float64) *domain.TimeLog {
	now := nextFixtureTime()
	return &domain.TimeLog{
		ID:          uuid.New().String(),
		TaskID:      taskID,
		UserID:      userID,
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Hours:       hours,
		Description: "Trabajo de desarrollo",
		CreatedAt:   now,
	}
}

// Deliverable options
type DeliverableOption func(*domain.Deliverable)

func WithDeliverableStatus(s domain.DeliverableStatus) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.Status = s
	}
}

func WithCreator(userID string) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.CreatedBy = &userID
	}
}

func NewTestDeliverable(taskID, name string, opts ...DeliverableOption) *domain.Deliverable {
	now := nextFixtureTime()
	d := &domain.Deliverable{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Name:      name,
		Type:      domain.DeliverableDocument,
		Version:   domain.DefaultDeliverableVersion,
		Status:    domain.DeliverablePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func NewTestInvitation(email string, role domain.Role) *domain.Invitation {
	now := nextFixtureTime()
	return &domain.Invitation{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      role,
		Status:    domain.InvitationPending,
		InvitedAt: now,
		CreatedAt: now,
	}
}

func NewTestNotification(userID, title string) *domain.Notification {
	return &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   title,
		Type:      domain.NotifyInfo,
		CreatedAt: nextFixtureTime(),
	}
}
