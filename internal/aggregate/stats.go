package aggregate

import "github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"

const (
	activeProjectsShown = 5
	urgentTasksShown    = 4
)

// Stats are the operational counters of the dashboard.
type Stats struct {
	ActiveProjects int
	PendingTasks   int
	UrgentTasks    int
	CompletedTasks int
	TotalTasks     int
	// Efficiency is completed/total as a percentage; 0 with no tasks.
	Efficiency float64
}

// ComputeStats counts projects in progress and classifies tasks. A task is
// pending until completed; urgent tasks are pending with high priority.
func ComputeStats(projects []*domain.Project, tasks []*domain.Task) Stats {
	var s Stats
	for _, p := range projects {
		if p.Status == domain.ProjectInProgress {
			s.ActiveProjects++
		}
	}
	s.TotalTasks = len(tasks)
	for _, t := range tasks {
		if t.Status == domain.TaskCompleted {
			s.CompletedTasks++
			continue
		}
		s.PendingTasks++
		if t.Priority == domain.PriorityHigh {
			s.UrgentTasks++
		}
	}
	if s.TotalTasks > 0 {
		s.Efficiency = float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
	}
	return s
}

// Dashboard is the full dashboard read model.
type Dashboard struct {
	Financials     Financials
	Stats          Stats
	ActiveProjects []*domain.Project
	UrgentTasks    []*domain.Task
	Team           []*domain.User
}

// BuildDashboard recomputes every dashboard value from the four inputs.
func BuildDashboard(projects []*domain.Project, tasks []*domain.Task, entries []domain.TimeLogEntry, users []*domain.User) Dashboard {
	d := Dashboard{
		Financials: ComputeFinancials(entries),
		Stats:      ComputeStats(projects, tasks),
		Team:       users,
	}
	for _, p := range projects {
		if p.Status == domain.ProjectInProgress && len(d.ActiveProjects) < activeProjectsShown {
			d.ActiveProjects = append(d.ActiveProjects, p)
		}
	}
	for _, t := range tasks {
		if t.Status != domain.TaskCompleted && t.Priority == domain.PriorityHigh && len(d.UrgentTasks) < urgentTasksShown {
			d.UrgentTasks = append(d.UrgentTasks, t)
		}
	}
	return d
}

// TeamSize is the number of users on the dashboard.
func (d Dashboard) TeamSize() int { return len(d.Team) }
