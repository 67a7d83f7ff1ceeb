package domain

import "time"

// Task is a service order: a unit of billable, trackable work within a project.
type Task struct {
	ID          string
	Name        string
	Description *string
	ProjectID   string
	// ResponsibleID is the legacy single-owner field. It mirrors the first
	// assignee and is kept for older readers.
	ResponsibleID  *string
	Priority       TaskPriority
	Status         TaskStatus
	EstimatedHours float64
	RealHours      float64
	DueDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Populated by joined reads only.
	ProjectName string
	Assignees   []*User
}

type TaskAssignment struct {
	ID         string
	TaskID     string
	UserID     string
	RoleInTask string
}

// Record exposes the task as the key-value shape the validation schemas use.
func (t *Task) Record() map[string]any {
	return map[string]any{
		"nombre":          t.Name,
		"proyecto_id":     t.ProjectID,
		"horas_estimadas": t.EstimatedHours,
		"descripcion":     StrOrEmpty(t.Description),
	}
}

func (t *Task) IsCompleted() bool { return t.Status == TaskCompleted }

// AssigneeIDs returns the IDs of the hydrated assignees, falling back to the
// legacy responsible user when no assignment rows were loaded.
func (t *Task) AssigneeIDs() []string {
	if len(t.Assignees) > 0 {
		ids := make([]string, 0, len(t.Assignees))
		for _, u := range t.Assignees {
			ids = append(ids, u.ID)
		}
		return ids
	}
	if t.ResponsibleID != nil {
		return []string{*t.ResponsibleID}
	}
	return nil
}

// ProgressPct returns real hours as a percentage of the estimate, capped at 100.
func (t *Task) ProgressPct() float64 {
	if t.EstimatedHours <= 0 {
		return 0
	}
	pct := t.RealHours / t.EstimatedHours * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// DedupeIDs removes blanks and repeated IDs, keeping first occurrence order.
func DedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
