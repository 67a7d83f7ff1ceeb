package formatter

import (
	"fmt"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatCompanyList renders the companies inside a bordered box.
func FormatCompanyList(companies []*domain.Company) string {
	headers := []string{"ID", "EMPRESA", "EMAIL", "TELÉFONO"}
	rows := make([][]string, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Name),
			OrDash(domain.StrOrEmpty(c.Email)),
			OrDash(domain.StrOrEmpty(c.Phone)),
		})
	}
	return RenderBox("Empresas", RenderTable(headers, rows))
}

// FormatProjectList renders the projects inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "PROYECTO", "EMPRESA", "ESTADO", "INICIO", "FIN"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			OrDash(p.CompanyName),
			RenderBadge(aggregate.ProjectBadge(p.Status)),
			DatePtr(p.StartDate),
			DatePtr(p.EndDate),
		})
	}
	return RenderBox("Proyectos", RenderTable(headers, rows))
}

// FormatProject renders one project card.
func FormatProject(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Name) + "\n")
	b.WriteString(RenderBadge(aggregate.ProjectBadge(p.Status)) + "\n\n")
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-11s", label)), value))
	}
	field("ID", p.ID)
	field("EMPRESA", OrDash(p.CompanyName))
	field("INICIO", DatePtr(p.StartDate))
	field("FIN", DatePtr(p.EndDate))
	budget := Dim("--")
	if p.Budget != nil {
		budget = Money(*p.Budget)
	}
	field("PRESUPUESTO", budget)
	if d := domain.StrOrEmpty(p.Description); d != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(60).Render(d) + "\n")
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}
