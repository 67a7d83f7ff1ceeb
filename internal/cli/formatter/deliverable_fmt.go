package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// FormatDeliverableList renders deliverables with their workflow badge.
func FormatDeliverableList(items []*domain.Deliverable) string {
	headers := []string{"ID", "ENTREGABLE", "TIPO", "VERSIÓN", "ESTADO", "TAREA", "PROYECTO"}
	rows := make([][]string, 0, len(items))
	for _, d := range items {
		rows = append(rows, []string{
			TruncID(d.ID),
			Bold(d.Name),
			d.Type.Label(),
			"v" + d.Version,
			RenderBadge(aggregate.DeliverableBadge(d.Status)),
			OrDash(d.TaskName),
			OrDash(d.ProjectName),
		})
	}
	return RenderBox("Entregables", RenderTable(headers, rows))
}

// FormatDeliverable renders one deliverable card with its file and the
// client's decision.
func FormatDeliverable(d *domain.Deliverable) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(d.Name) + "  " + RenderBadge(aggregate.DeliverableBadge(d.Status)) + "\n\n")
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-10s", label)), value))
	}
	field("ID", d.ID)
	field("TIPO", d.Type.Label())
	field("VERSIÓN", "v"+d.Version)
	field("TAREA", OrDash(d.TaskName))
	field("PROYECTO", OrDash(d.ProjectName))
	field("EMPRESA", OrDash(d.CompanyName))
	field("CREADO POR", OrDash(d.CreatorName))
	if d.HasFile() {
		field("ARCHIVO", domain.StrOrEmpty(d.FileName)+" "+Dim("("+FileSize(d.FileSize)+")"))
		field("URL", StyleBlue.Render(*d.FileURL))
	}
	if d.DueDate != nil {
		field("ENTREGA", Date(*d.DueDate))
	}
	if d.ApprovedAt != nil {
		field("APROBADO", Date(*d.ApprovedAt)+" "+Dim(OrDash(d.ApproverName)))
	}
	if c := domain.StrOrEmpty(d.ClientComments); c != "" {
		b.WriteString("\n" + StyleDim.Render("COMENTARIOS DEL CLIENTE") + "\n" + c + "\n")
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

// FormatVersionHistory renders the upload history, newest first.
func FormatVersionHistory(versions []*domain.DeliverableVersion, now time.Time) string {
	if len(versions) == 0 {
		return Dim("Sin versiones anteriores.")
	}
	headers := []string{"VERSIÓN", "ARCHIVO", "TAMAÑO", "SUBIDO POR", "CUÁNDO", "NOTAS"}
	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		size := v.FileSize
		rows = append(rows, []string{
			Bold("v" + v.Version),
			v.FileName,
			FileSize(&size),
			OrDash(v.UploaderName),
			Ago(v.CreatedAt, now),
			OrDash(v.Notes),
		})
	}
	return RenderBox("Historial de versiones", RenderTable(headers, rows))
}
