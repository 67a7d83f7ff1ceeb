package cli

import (
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"panel"},
		Short:   "Resumen financiero, eficiencia, proyectos activos y tareas urgentes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.currentUser(cmd.Context()); err != nil {
				return err
			}
			d, err := app.Dashboard.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), formatter.FormatDashboard(d))
			return nil
		},
	}
}
