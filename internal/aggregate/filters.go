package aggregate

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// TaskFilter selects tasks for the task list. Zero fields match everything.
type TaskFilter struct {
	ProjectID string
	Status    domain.TaskStatus
	// Search matches name or description, ignoring case and accents.
	Search string
	// AssigneeIDs matches tasks assigned to any of the given users.
	AssigneeIDs []string
}

// Match reports whether t passes every active criterion.
func (f TaskFilter) Match(t *domain.Task) bool {
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if q := Fold(f.Search); q != "" {
		if !strings.Contains(Fold(t.Name), q) && !strings.Contains(Fold(domain.StrOrEmpty(t.Description)), q) {
			return false
		}
	}
	if len(f.AssigneeIDs) > 0 && !assignedToAny(t, f.AssigneeIDs) {
		return false
	}
	return true
}

func assignedToAny(t *domain.Task, ids []string) bool {
	for _, u := range t.Assignees {
		for _, id := range ids {
			if u.ID == id {
				return true
			}
		}
	}
	return false
}

// FilterTasks returns the tasks matching f, preserving order.
func FilterTasks(tasks []*domain.Task, f TaskFilter) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// DeliverableFilter selects deliverables by status and task.
type DeliverableFilter struct {
	Status domain.DeliverableStatus
	TaskID string
}

func (f DeliverableFilter) Match(d *domain.Deliverable) bool {
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	return f.TaskID == "" || d.TaskID == f.TaskID
}

func FilterDeliverables(items []*domain.Deliverable, f DeliverableFilter) []*domain.Deliverable {
	out := make([]*domain.Deliverable, 0, len(items))
	for _, d := range items {
		if f.Match(d) {
			out = append(out, d)
		}
	}
	return out
}

// Fold lowercases s and strips combining marks, so "Diseño" matches "diseno".
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
