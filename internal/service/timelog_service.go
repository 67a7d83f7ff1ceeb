package service

import (
	"context"
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/repository"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/validation"
	"github.com/google/uuid"
)

// RecentTimeLogs is how many entries the time tracking list shows.
const RecentTimeLogs = 50

type TimeLogService struct {
	*base
}

// Log records hours worked by actor and adds them to the task's real hours.
func (s *TimeLogService) Log(ctx context.Context, actor *domain.User, l *domain.TimeLog) (err error) {
	uc := s.begin("log-hours", map[string]any{"task_id": l.TaskID, "hours": l.Hours}).
		toast("Horas registradas", fmt.Sprintf("%.2f h", l.Hours))
	defer func() { s.end(ctx, uc, err) }()

	draft := *l
	defer func() {
		if err != nil {
			*l = draft
		}
	}()

	if err = requireActor(actor); err != nil {
		return err
	}
	if err = validation.Validate(l.Record(), validation.RegistroHoras()).Err(); err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	userID := actor.ID
	l.UserID = &userID
	l.CreatedAt = s.clock()

	return s.write(ctx, func(ctx context.Context, repos *repository.Set) error {
		if err := repos.TimeLogs.Create(ctx, l); err != nil {
			return err
		}
		if err := repos.Tasks.AddRealHours(ctx, l.TaskID, l.Hours); err != nil {
			return fmt.Errorf("updating real hours: %w", err)
		}
		return nil
	})
}

// ListRecent returns the latest entries joined with task and user names.
func (s *TimeLogService) ListRecent(ctx context.Context) (entries []domain.TimeLogEntry, err error) {
	uc := s.begin("list-time-logs", nil)
	defer func() { s.end(ctx, uc, err) }()
	return s.repos.TimeLogs.ListEntries(ctx, RecentTimeLogs)
}
