package formatter

import (
	"fmt"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/charmbracelet/lipgloss"
)

// FormatDashboard renders the financial cards, the operational counters,
// the active projects and the urgent tasks.
func FormatDashboard(d aggregate.Dashboard) string {
	f := d.Financials
	profit := StyleGreen
	if f.Profit < 0 {
		profit = StyleRed
	}
	card := func(title, value, note string) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 2).
			Render(StyleDim.Render(title) + "\n" + value + "\n" + Dim(note))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Facturación Total", Bold(Money(f.TotalRevenue)), "Horas x tarifa facturable"),
		card("Costo Operativo", Bold(Money(f.TotalCost)), "Gasto en nómina vs Ingreso"),
		card("Margen Neto", profit.Render(Money(f.Profit)), Percent(f.ProfitMargin)+" de margen"),
	)

	s := d.Stats
	var b strings.Builder
	b.WriteString(cards + "\n\n")
	b.WriteString(fmt.Sprintf("%s %d   %s %d   %s %d   %s %d\n\n",
		Dim("Proyectos activos"), s.ActiveProjects,
		Dim("Tareas pendientes"), s.PendingTasks,
		Dim("Urgentes"), s.UrgentTasks,
		Dim("Equipo"), d.TeamSize()))
	b.WriteString(Dim("Eficiencia Global ") + RenderProgress(s.Efficiency, 20) +
		Dim(fmt.Sprintf("  %d de %d completado", s.CompletedTasks, s.TotalTasks)) + "\n\n")

	b.WriteString(Header("Proyectos Activos") + "\n")
	if len(d.ActiveProjects) == 0 {
		b.WriteString(Dim("No hay proyectos activos actualmente.") + "\n")
	} else {
		rows := make([][]string, 0, len(d.ActiveProjects))
		for _, p := range d.ActiveProjects {
			rows = append(rows, []string{Bold(p.Name), OrDash(p.CompanyName), RenderBadge(aggregate.ProjectBadge(p.Status))})
		}
		b.WriteString(RenderTable([]string{"PROYECTO", "EMPRESA", "ESTADO"}, rows))
	}

	b.WriteString("\n" + Header("Tareas Urgentes") + "\n")
	if len(d.UrgentTasks) == 0 {
		b.WriteString(Dim("No hay tareas urgentes.") + "\n")
	} else {
		for _, t := range d.UrgentTasks {
			b.WriteString(StyleRed.Render("● ") + t.Name + " " + Dim(OrDash(t.ProjectName)) + "\n")
		}
	}
	return RenderBox("Dashboard General", strings.TrimRight(b.String(), "\n"))
}
