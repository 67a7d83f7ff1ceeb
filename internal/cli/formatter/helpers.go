package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Money renders an amount with Colombian grouping, e.g. "$1.234.567".
// Cents are shown only when present.
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	if v == math.Trunc(v) {
		return sign + printer.Sprintf("$%d", int64(v))
	}
	return sign + printer.Sprintf("$%.2f", v)
}

// Percent renders a percentage with one decimal.
func Percent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}

// Hours renders a number of hours, dropping a trailing ".00".
func Hours(h float64) string {
	s := strings.TrimSuffix(fmt.Sprintf("%.2f", h), ".00")
	return s + " h"
}

// FileSize renders a byte count, "--" when unknown.
func FileSize(size *int64) string {
	if size == nil {
		return Dim("--")
	}
	return humanize.Bytes(uint64(max(*size, 0)))
}

var months = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// Date renders a date as "2 mar 2025".
func Date(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// DatePtr renders an optional date, "--" when unset.
func DatePtr(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return Date(*t)
}

// Ago renders how long before now t happened, in Spanish.
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "hace un momento"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minuto", "minutos")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hora", "horas")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "día", "días")
	default:
		return Date(t)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "hace 1 " + one
	}
	return fmt.Sprintf("hace %d %s", n, many)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// OrDash renders s, or a dimmed "--" when blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}

// Names joins the users' names.
func Names(users []*domain.User) string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	return OrDash(strings.Join(names, ", "))
}
