package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/service"
	"github.com/spf13/cobra"
)

func (a *App) resolveDeliverableID(ctx context.Context, input string) (string, error) {
	items, err := a.Deliverables.List(ctx, aggregate.DeliverableFilter{})
	if err != nil {
		return "", err
	}
	return resolveID("entregable", input, items,
		func(d *domain.Deliverable) string { return d.ID },
		func(d *domain.Deliverable) string { return d.Name })
}

// readUpload loads a local file for upload. An empty path means no file.
func readUpload(path string) (*service.Upload, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leyendo %s: %w", path, err)
	}
	return &service.Upload{Name: filepath.Base(path), Data: data}, nil
}

func newDeliverableCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deliverable",
		Aliases: []string{"entregable"},
		Short:   "Gestiona entregables, sus versiones y su aprobación",
	}
	cmd.AddCommand(
		newDeliverableAddCmd(app),
		newDeliverableListCmd(app),
		newDeliverableShowCmd(app),
		newDeliverableReviewCmd(app),
		newDeliverableApproveCmd(app),
		newDeliverableRejectCmd(app),
		newDeliverableVersionCmd(app),
		newDeliverableHistoryCmd(app),
		newDeliverableRemoveCmd(app),
	)
	return cmd
}

func newDeliverableAddCmd(app *App) *cobra.Command {
	var task, name, kind, description, due, file string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Registra un entregable y sube su archivo",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			taskID, err := app.resolveTaskID(ctx, task)
			if err != nil {
				return err
			}
			dueDate, err := parseDate("due", due)
			if err != nil {
				return err
			}
			upload, err := readUpload(file)
			if err != nil {
				return err
			}
			d := &domain.Deliverable{
				TaskID:      taskID,
				Name:        name,
				Type:        domain.DeliverableType(kind),
				Description: optionalString(description),
				DueDate:     dueDate,
			}
			if err := app.Deliverables.Create(ctx, actor, d, upload); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Entregable %s creado [%s]\n", d.Name, formatter.TruncID(d.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&task, "task", "", "Tarea (ID, prefijo o nombre)")
	cmd.Flags().StringVar(&name, "name", "", "Nombre del entregable")
	enumFlag(cmd.Flags(), &kind, "type", string(domain.DeliverableDocument), "Tipo de entregable", deliverableTypes...)
	cmd.Flags().StringVar(&description, "description", "", "Descripción")
	cmd.Flags().StringVar(&due, "due", "", "Fecha de entrega (AAAA-MM-DD)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Archivo a subir")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDeliverableListCmd(app *App) *cobra.Command {
	var status, task string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lista los entregables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.currentUser(ctx); err != nil {
				return err
			}
			filter := aggregate.DeliverableFilter{Status: domain.DeliverableStatus(status)}
			if task != "" {
				id, err := app.resolveTaskID(ctx, task)
				if err != nil {
					return err
				}
				filter.TaskID = id
			}
			items, err := app.Deliverables.List(ctx, filter)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatDeliverableList(items))
			return nil
		},
	}
	enumFlag(cmd.Flags(), &status, "status", "", "Filtra por estado", deliverableStatuses...)
	cmd.Flags().StringVar(&task, "task", "", "Filtra por tarea")
	return cmd
}

func newDeliverableShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <entregable>",
		Short: "Muestra un entregable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.currentUser(ctx); err != nil {
				return err
			}
			id, err := app.resolveDeliverableID(ctx, args[0])
			if err != nil {
				return err
			}
			d, err := app.Deliverables.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatDeliverable(d))
			return nil
		},
	}
}

// deliverableAction runs a workflow transition on the named deliverable.
func deliverableAction(app *App, use, short, done string, run func(ctx context.Context, actor *domain.User, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <entregable>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := app.resolveDeliverableID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := run(ctx, actor, id); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), done)
			return nil
		},
	}
}

func newDeliverableReviewCmd(app *App) *cobra.Command {
	return deliverableAction(app, "review", "Envía un entregable a revisión del cliente", "Entregable enviado a revisión",
		app.Deliverables.MarkForReview)
}

func newDeliverableApproveCmd(app *App) *cobra.Command {
	var comments string
	cmd := deliverableAction(app, "approve", "Aprueba un entregable en revisión", "Entregable aprobado",
		func(ctx context.Context, actor *domain.User, id string) error {
			return app.Deliverables.Approve(ctx, actor, id, comments)
		})
	cmd.Flags().StringVarP(&comments, "comments", "m", "", "Comentarios para el equipo")
	return cmd
}

func newDeliverableRejectCmd(app *App) *cobra.Command {
	var comments string
	cmd := deliverableAction(app, "reject", "Rechaza un entregable en revisión", "Entregable rechazado",
		func(ctx context.Context, actor *domain.User, id string) error {
			return app.Deliverables.Reject(ctx, actor, id, comments)
		})
	cmd.Flags().StringVarP(&comments, "comments", "m", "", "Motivo del rechazo (obligatorio)")
	return cmd
}

func newDeliverableVersionCmd(app *App) *cobra.Command {
	var file, label, notes string
	cmd := &cobra.Command{
		Use:   "version <entregable>",
		Short: "Sube una nueva versión del archivo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := app.resolveDeliverableID(ctx, args[0])
			if err != nil {
				return err
			}
			upload, err := readUpload(file)
			if err != nil {
				return err
			}
			v, err := app.Deliverables.UploadVersion(ctx, actor, id, upload, label, notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Versión %s subida (%s)\n", v.Version, formatter.FileSize(&v.FileSize))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Archivo a subir")
	cmd.Flags().StringVar(&label, "version", "", "Etiqueta de la versión, p. ej. 1.1")
	cmd.Flags().StringVar(&notes, "notes", "", "Notas de la versión")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}

func newDeliverableHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <entregable>",
		Short: "Muestra el historial de versiones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.currentUser(ctx); err != nil {
				return err
			}
			id, err := app.resolveDeliverableID(ctx, args[0])
			if err != nil {
				return err
			}
			versions, err := app.Deliverables.ListVersions(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatVersionHistory(versions, app.now()))
			return nil
		},
	}
}

func newDeliverableRemoveCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <entregable>",
		Short: "Elimina un entregable y su archivo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := app.resolveDeliverableID(ctx, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirm("¿Eliminar el entregable?", yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Deliverables.Delete(ctx, actor, id); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Entregable eliminado")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "No pedir confirmación")
	return cmd
}
