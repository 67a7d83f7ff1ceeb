package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

type Project struct {
	ID          string
	Name        string
	Description *string
	CompanyID   *string
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// CompanyName is populated by joined reads only.
	CompanyName string
}

// Record exposes the project as the key-value shape the validation schemas use.
func (p *Project) Record() map[string]any {
	return map[string]any{
		"nombre":       p.Name,
		"descripcion":  StrOrEmpty(p.Description),
		"fecha_inicio": formatDatePtr(p.StartDate),
		"fecha_fin":    formatDatePtr(p.EndDate),
	}
}

// ValidateDates checks that the end date, when both are set, is not before the start date.
func (p *Project) ValidateDates() error {
	if p.StartDate == nil || p.EndDate == nil {
		return nil
	}
	if p.EndDate.Before(*p.StartDate) {
		return Invalid("fecha_fin", "La fecha final debe ser posterior a la fecha inicial")
	}
	return nil
}

// ParseDate parses an optional YYYY-MM-DD date. Blank input yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return &t, nil
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
