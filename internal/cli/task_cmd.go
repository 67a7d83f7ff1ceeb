package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/spf13/cobra"
)

func (a *App) resolveTaskID(ctx context.Context, input string) (string, error) {
	tasks, err := a.Tasks.List(ctx, aggregate.TaskFilter{})
	if err != nil {
		return "", err
	}
	return resolveID("tarea", input, tasks,
		func(t *domain.Task) string { return t.ID },
		func(t *domain.Task) string { return t.Name })
}

// resolveUserIDs accepts IDs, ID prefixes, names or e-mail addresses.
func (a *App) resolveUserIDs(ctx context.Context, inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	users, err := a.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if u := userByEmail(users, in); u != nil {
			ids = append(ids, u.ID)
			continue
		}
		id, err := resolveID("usuario", in, users,
			func(u *domain.User) string { return u.ID },
			func(u *domain.User) string { return u.Name })
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return domain.DedupeIDs(ids), nil
}

func userByEmail(users []*domain.User, email string) *domain.User {
	email = strings.TrimSpace(email)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tarea"},
		Short:   "Gestiona tareas y sus responsables",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskEditCmd(app),
		newTaskAssignCmd(app),
		newTaskRemoveCmd(app),
	)
	return cmd
}

type taskFlags struct {
	project, name, description, priority, status, due string
	hours                                             float64
	assign                                            []string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.project, "project", "", "Proyecto (ID, prefijo o nombre)")
	cmd.Flags().StringVar(&f.name, "name", "", "Nombre de la tarea")
	cmd.Flags().StringVar(&f.description, "description", "", "Descripción")
	enumFlag(cmd.Flags(), &f.priority, "priority", "", "Prioridad", taskPriorities...)
	enumFlag(cmd.Flags(), &f.status, "status", "", "Estado", taskStatuses...)
	cmd.Flags().StringVar(&f.due, "due", "", "Fecha límite (AAAA-MM-DD)")
	cmd.Flags().Float64Var(&f.hours, "hours", 0, "Horas estimadas")
	cmd.Flags().StringSliceVar(&f.assign, "assign", nil, "Responsables (se puede repetir)")
}

// apply copies the flags the user set onto t. It returns the assignee set
// to save: the flag value when given, else the current assignees.
func (f *taskFlags) apply(ctx context.Context, app *App, cmd *cobra.Command, t *domain.Task) ([]string, error) {
	flags := cmd.Flags()
	if flags.Changed("project") {
		id, err := app.resolveProjectID(ctx, f.project)
		if err != nil {
			return nil, err
		}
		t.ProjectID = id
	}
	if flags.Changed("name") {
		t.Name = f.name
	}
	if flags.Changed("description") {
		t.Description = optionalString(f.description)
	}
	if flags.Changed("priority") {
		t.Priority = domain.TaskPriority(f.priority)
	}
	if flags.Changed("status") {
		t.Status = domain.TaskStatus(f.status)
	}
	if flags.Changed("due") {
		d, err := parseDate("due", f.due)
		if err != nil {
			return nil, err
		}
		t.DueDate = d
	}
	if flags.Changed("hours") {
		t.EstimatedHours = f.hours
	}
	if !flags.Changed("assign") {
		return t.AssigneeIDs(), nil
	}
	return app.resolveUserIDs(ctx, f.assign)
}

func newTaskAddCmd(app *App) *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Crea una tarea",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			t := &domain.Task{}
			assignees, err := f.apply(ctx, app, cmd, t)
			if err != nil {
				return err
			}
			if err := app.Tasks.Save(ctx, actor, t, assignees); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Tarea %s creada [%s]\n", t.Name, formatter.TruncID(t.ID))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project, status, search string
	var assignees []string
	var mine bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lista las tareas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			filter := aggregate.TaskFilter{Status: domain.TaskStatus(status), Search: search}
			if project != "" {
				if filter.ProjectID, err = app.resolveProjectID(ctx, project); err != nil {
					return err
				}
			}
			if filter.AssigneeIDs, err = app.resolveUserIDs(ctx, assignees); err != nil {
				return err
			}
			if mine {
				filter.AssigneeIDs = append(filter.AssigneeIDs, actor.ID)
			}
			tasks, err := app.Tasks.List(ctx, filter)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatTaskList(tasks))
			return nil
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Filtra por proyecto")
	enumFlag(cmd.Flags(), &status, "status", "", "Filtra por estado", taskStatuses...)
	cmd.Flags().StringVarP(&search, "search", "s", "", "Busca en nombre y descripción")
	cmd.Flags().StringSliceVar(&assignees, "assignee", nil, "Filtra por responsable")
	cmd.Flags().BoolVar(&mine, "mine", false, "Solo mis tareas")
	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <tarea>",
		Short: "Muestra una tarea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.currentUser(ctx); err != nil {
				return err
			}
			id, err := app.resolveTaskID(ctx, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatTask(t))
			return nil
		},
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "edit <tarea>",
		Short: "Modifica una tarea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := app.resolveTaskID(ctx, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.Get(ctx, id)
			if err != nil {
				return err
			}
			assignees, err := f.apply(ctx, app, cmd, t)
			if err != nil {
				return err
			}
			if err := app.Tasks.Save(ctx, actor, t, assignees); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Tarea %s actualizada\n", t.Name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newTaskAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <tarea> [usuario...]",
		Short: "Reemplaza los responsables de una tarea",
		Long:  "Reemplaza los responsables de una tarea. Sin usuarios, la tarea queda sin asignar.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			if !actor.Role.CanAssignTasks() {
				return domain.Forbidden("Tu rol no puede asignar tareas")
			}
			id, err := app.resolveTaskID(ctx, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.Get(ctx, id)
			if err != nil {
				return err
			}
			assignees, err := app.resolveUserIDs(ctx, args[1:])
			if err != nil {
				return err
			}
			if err := app.Tasks.Save(ctx, actor, t, assignees); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Tarea %s: %d responsable(s)\n", t.Name, len(assignees))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <tarea>",
		Short: "Elimina una tarea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.currentUser(ctx); err != nil {
				return err
			}
			id, err := app.resolveTaskID(ctx, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirm("¿Eliminar la tarea?", yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Tarea eliminada")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "No pedir confirmación")
	return cmd
}
