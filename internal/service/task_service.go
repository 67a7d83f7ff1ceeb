package service

import (
	"context"
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/repository"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/validation"
	"github.com/google/uuid"
)

type TaskService struct {
	*base
	notifications *NotificationService
}

// List returns tasks newest first with their assignees, narrowed by f.
// Project and status filter in the query; search and assignees filter after
// hydration.
func (s *TaskService) List(ctx context.Context, f aggregate.TaskFilter) (tasks []*domain.Task, err error) {
	uc := s.begin("list-tasks", map[string]any{"project_id": f.ProjectID, "status": string(f.Status)})
	defer func() { s.end(ctx, uc, err) }()

	tasks, err = s.repos.Tasks.List(ctx, repository.TaskQuery{ProjectID: f.ProjectID, Status: f.Status})
	if err != nil {
		return nil, err
	}
	if err = s.hydrate(ctx, tasks); err != nil {
		return nil, err
	}
	return aggregate.FilterTasks(tasks, f), nil
}

// ListOpen returns the tasks that are not completed, for pickers.
func (s *TaskService) ListOpen(ctx context.Context) ([]*domain.Task, error) {
	return s.repos.Tasks.List(ctx, repository.TaskQuery{ExcludeCompleted: true})
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	t, err := s.repos.Tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, []*domain.Task{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) hydrate(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	assignees, err := s.repos.Assignments.ListAssignees(ctx, ids)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		t.Assignees = assignees[t.ID]
	}
	return nil
}

func validateTask(t *domain.Task) error {
	if err := validation.Validate(t.Record(), validation.Tarea()).Err(); err != nil {
		return err
	}
	if t.Priority != "" && !domain.ValidTaskPriorities[t.Priority] {
		return domain.Invalid("prioridad", "Prioridad inválida")
	}
	if t.Status != "" && !domain.ValidTaskStatuses[t.Status] {
		return domain.Invalid("estado", "Estado de tarea inválido")
	}
	return nil
}

// Save creates or updates t and reconciles its assignee set with
// assigneeIDs. A task without an ID is created.
//
// Non-client actors set the legacy responsible field to the first assignee.
// Actors that may assign replace the whole assignment set; everyone else
// leaves it untouched. Newly assigned users are notified.
func (s *TaskService) Save(ctx context.Context, actor *domain.User, t *domain.Task, assigneeIDs []string) (err error) {
	creating := t.ID == ""
	name := "update-task"
	title := "Tarea actualizada"
	if creating {
		name = "create-task"
		title = "Tarea creada"
	}
	uc := s.begin(name, map[string]any{"task_id": t.ID, "assignees": len(assigneeIDs)}).toast(title, t.Name)
	defer func() { s.end(ctx, uc, err) }()

	// A failed save leaves t unchanged.
	draft := *t
	defer func() {
		if err != nil {
			*t = draft
		}
	}()

	if err = requireActor(actor); err != nil {
		return err
	}
	if err = validateTask(t); err != nil {
		return err
	}
	desired := domain.DedupeIDs(assigneeIDs)
	now := s.clock()
	if creating {
		t.ID = uuid.New().String()
		t.CreatedAt = now
		if t.Priority == "" {
			t.Priority = domain.PriorityMedium
		}
		if t.Status == "" {
			t.Status = domain.TaskPending
		}
	}
	t.UpdatedAt = now
	uc.fields["task_id"] = t.ID

	var created []*domain.Notification
	err = s.write(ctx, func(ctx context.Context, repos *repository.Set) error {
		var previous *domain.Task
		if !creating {
			prev, err := repos.Tasks.GetByID(ctx, t.ID)
			if err != nil {
				return err
			}
			previous = prev
			t.CreatedAt = prev.CreatedAt
			t.RealHours = prev.RealHours
		}

		switch {
		case !actor.Role.IsClient() && len(desired) > 0:
			first := desired[0]
			t.ResponsibleID = &first
		case !actor.Role.IsClient():
			t.ResponsibleID = nil
		case previous != nil:
			t.ResponsibleID = previous.ResponsibleID
		default:
			t.ResponsibleID = nil
		}

		if creating {
			if err := repos.Tasks.Create(ctx, t); err != nil {
				return err
			}
		} else if err := repos.Tasks.Update(ctx, t); err != nil {
			return err
		}

		if !actor.Role.CanAssignTasks() {
			return nil
		}
		before, err := repos.Assignments.ListUserIDs(ctx, t.ID)
		if err != nil {
			return err
		}
		if err := repos.Assignments.DeleteByTask(ctx, t.ID); err != nil {
			return fmt.Errorf("clearing assignees: %w", err)
		}
		for _, userID := range desired {
			a := &domain.TaskAssignment{
				ID:         uuid.New().String(),
				TaskID:     t.ID,
				UserID:     userID,
				RoleInTask: domain.AssignmentRoleCollaborator,
			}
			if err := repos.Assignments.Create(ctx, a); err != nil {
				return fmt.Errorf("assigning user %s: %w", userID, err)
			}
		}

		already := make(map[string]bool, len(before))
		for _, id := range before {
			already[id] = true
		}
		for _, userID := range desired {
			if already[userID] || userID == actor.ID {
				continue
			}
			n, err := s.notifications.insert(ctx, repos, &domain.Notification{
				UserID:  userID,
				Title:   "Nueva tarea asignada",
				Message: fmt.Sprintf("Se te asignó la tarea «%s»", t.Name),
				Type:    domain.NotifyAssignment,
				Link:    domain.StrPtr("/tasks/" + t.ID),
			})
			if err != nil {
				return err
			}
			created = append(created, n)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifications.publish(created...)
	return nil
}

// Delete removes the task with its assignments, time logs and deliverables.
func (s *TaskService) Delete(ctx context.Context, id string) (err error) {
	uc := s.begin("delete-task", map[string]any{"task_id": id}).toast("Tarea eliminada", "")
	defer func() { s.end(ctx, uc, err) }()
	return s.repos.Tasks.Delete(ctx, id)
}
