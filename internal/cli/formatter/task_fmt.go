package formatter

import (
	"fmt"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatTaskList renders tasks with their assignees and hour progress.
func FormatTaskList(tasks []*domain.Task) string {
	headers := []string{"ID", "TAREA", "PROYECTO", "PRIORIDAD", "ESTADO", "ASIGNADOS", "HORAS"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Name),
			OrDash(t.ProjectName),
			RenderBadge(aggregate.PriorityBadge(t.Priority)),
			RenderBadge(aggregate.TaskStatusBadge(t.Status)),
			Names(t.Assignees),
			hoursProgress(t),
		})
	}
	return RenderBox("Tareas", RenderTable(headers, rows))
}

func hoursProgress(t *domain.Task) string {
	s := Hours(t.RealHours) + " / " + Hours(t.EstimatedHours)
	if t.EstimatedHours > 0 && t.RealHours > t.EstimatedHours {
		return StyleRed.Render(s)
	}
	return s
}

// FormatTimeLogList renders time entries newest first.
func FormatTimeLogList(entries []domain.TimeLogEntry) string {
	headers := []string{"FECHA", "TAREA", "USUARIO", "HORAS", "DESCRIPCIÓN"}
	rows := make([][]string, 0, len(entries))
	var total float64
	for _, e := range entries {
		total += e.Hours
		rows = append(rows, []string{
			Date(e.Date),
			OrDash(e.TaskName),
			OrDash(e.UserName),
			Hours(e.Hours),
			e.Description,
		})
	}
	return RenderBox("Registro de horas", RenderTable(headers, rows)+"\n"+Dim("Total: ")+Bold(Hours(total)))
}

// FormatTask renders one task card with its progress bar.
func FormatTask(t *domain.Task) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Name) + "\n")
	b.WriteString(RenderBadge(aggregate.TaskStatusBadge(t.Status)) + "  " +
		RenderBadge(aggregate.PriorityBadge(t.Priority)) + "\n\n")
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-11s", label)), value))
	}
	field("ID", t.ID)
	field("PROYECTO", OrDash(t.ProjectName))
	field("ASIGNADOS", Names(t.Assignees))
	field("VENCE", DatePtr(t.DueDate))
	field("HORAS", hoursProgress(t))
	field("PROGRESO", RenderProgress(t.ProgressPct(), 20))
	if d := domain.StrOrEmpty(t.Description); d != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(60).Render(d) + "\n")
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}
