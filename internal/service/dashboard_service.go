package service

import (
	"context"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/repository"
)

type DashboardService struct {
	*base
}

// Load reads projects, tasks, time logs with rates and users, and
// recomputes every dashboard figure from them.
func (s *DashboardService) Load(ctx context.Context) (d aggregate.Dashboard, err error) {
	uc := s.begin("load-dashboard", nil)
	defer func() { s.end(ctx, uc, err) }()

	projects, err := s.repos.Projects.List(ctx, "")
	if err != nil {
		return d, err
	}
	tasks, err := s.repos.Tasks.List(ctx, repository.TaskQuery{})
	if err != nil {
		return d, err
	}
	entries, err := s.repos.TimeLogs.ListEntries(ctx, 0)
	if err != nil {
		return d, err
	}
	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return d, err
	}
	uc.fields["projects"] = len(projects)
	uc.fields["tasks"] = len(tasks)
	uc.fields["time_logs"] = len(entries)
	return aggregate.BuildDashboard(projects, tasks, entries, users), nil
}
