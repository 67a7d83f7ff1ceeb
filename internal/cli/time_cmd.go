package cli

import (
	"fmt"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/spf13/cobra"
)

func newTimeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "time",
		Aliases: []string{"horas"},
		Short:   "Registra y consulta horas trabajadas",
	}
	cmd.AddCommand(newTimeLogCmd(app), newTimeListCmd(app))
	return cmd
}

func newTimeLogCmd(app *App) *cobra.Command {
	var task, date, description string
	var hours float64
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Registra horas sobre una tarea",
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
			day := app.now()
			if date != "" {
				d, err := parseDate("date", date)
				if err != nil {
					return err
				}
				day = *d
			}
			l := &domain.TimeLog{
				TaskID:      taskID,
				Date:        time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
				Hours:       hours,
				Description: description,
			}
			if err := app.TimeLogs.Log(ctx, actor, l); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%s registradas el %s\n", formatter.Hours(l.Hours), formatter.Date(l.Date))
			return nil
		},
	}
	cmd.Flags().StringVar(&task, "task", "", "Tarea (ID, prefijo o nombre)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Horas trabajadas (máximo 24)")
	cmd.Flags().StringVar(&date, "date", "", "Fecha (AAAA-MM-DD, por defecto hoy)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Descripción del trabajo")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newTimeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lista los registros de horas recientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.currentUser(cmd.Context()); err != nil {
				return err
			}
			entries, err := app.TimeLogs.ListRecent(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatTimeLogList(entries))
			return nil
		},
	}
}
