package cli

import (
	"context"
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/spf13/cobra"
)

func (a *App) resolveProjectID(ctx context.Context, input string) (string, error) {
	projects, err := a.Projects.List(ctx, "")
	if err != nil {
		return "", err
	}
	return resolveID("proyecto", input, projects,
		func(p *domain.Project) string { return p.ID },
		func(p *domain.Project) string { return p.Name })
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"proyecto"},
		Short:   "Gestiona proyectos",
	}
	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectEditCmd(app),
		newProjectRemoveCmd(app),
	)
	return cmd
}

type projectFlags struct {
	name, description, company, status, start, end string
	budget                                          float64
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Nombre del proyecto")
	cmd.Flags().StringVar(&f.description, "description", "", "Descripción")
	cmd.Flags().StringVar(&f.company, "company", "", "Empresa (ID, prefijo o nombre)")
	enumFlag(cmd.Flags(), &f.status, "status", "", "Estado", projectStatuses...)
	cmd.Flags().StringVar(&f.start, "start", "", "Fecha de inicio (AAAA-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "Fecha de fin (AAAA-MM-DD)")
	cmd.Flags().Float64Var(&f.budget, "budget", 0, "Presupuesto")
}

// apply copies the flags the user set onto p.
func (f *projectFlags) apply(ctx context.Context, app *App, cmd *cobra.Command, p *domain.Project) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = f.name
	}
	if flags.Changed("description") {
		p.Description = optionalString(f.description)
	}
	if flags.Changed("company") {
		p.CompanyID = nil
		if f.company != "" {
			id, err := app.resolveCompanyID(ctx, f.company)
			if err != nil {
				return err
			}
			p.CompanyID = &id
		}
	}
	if flags.Changed("status") {
		p.Status = domain.ProjectStatus(f.status)
	}
	if flags.Changed("start") {
		d, err := parseDate("start", f.start)
		if err != nil {
			return err
		}
		p.StartDate = d
	}
	if flags.Changed("end") {
		d, err := parseDate("end", f.end)
		if err != nil {
			return err
		}
		p.EndDate = d
	}
	if flags.Changed("budget") {
		b := f.budget
		p.Budget = &b
	}
	return nil
}

func newProjectAddCmd(app *App) *cobra.Command {
	var f projectFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Crea un proyecto",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.currentUser(ctx); err != nil {
				return err
			}
			p := &domain.Project{}
			if err := f.apply(ctx, app, cmd, p); err != nil {
				return err
			}
			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Proyecto %s creado [%s]\n", p.Name, formatter.TruncID(p.ID))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lista los proyectos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.currentUser(cmd.Context()); err != nil {
				return err
			}
			projects, err := app.Projects.List(cmd.Context(), domain.ProjectStatus(status))
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatProjectList(projects))
			return nil
		},
	}
	enumFlag(cmd.Flags(), &status, "status", "", "Filtra por estado", projectStatuses...)
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <proyecto>",
		Short: "Muestra el detalle de un proyecto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.currentUser(ctx); err != nil {
				return err
			}
			id, err := app.resolveProjectID(ctx, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatProject(p))
			return nil
		},
	}
}

func newProjectEditCmd(app *App) *cobra.Command {
	var f projectFlags
	cmd := &cobra.Command{
		Use:   "edit <proyecto>",
		Short: "Modifica un proyecto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.currentUser(ctx); err != nil {
				return err
			}
			id, err := app.resolveProjectID(ctx, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := f.apply(ctx, app, cmd, p); err != nil {
				return err
			}
			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Proyecto %s actualizado\n", p.Name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <proyecto>",
		Short: "Elimina un proyecto con sus tareas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.currentUser(ctx); err != nil {
				return err
			}
			id, err := app.resolveProjectID(ctx, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirm("¿Eliminar el proyecto y todas sus tareas?", yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Projects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Proyecto eliminado")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "No pedir confirmación")
	return cmd
}
