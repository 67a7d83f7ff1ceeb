package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/toast"
	"github.com/stretchr/testify/assert"
)

func TestAgo(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"now", now.Add(-10 * time.Second), "hace un momento"},
		{"one minute", now.Add(-time.Minute), "hace 1 minuto"},
		{"minutes", now.Add(-25 * time.Minute), "hace 25 minutos"},
		{"hours", now.Add(-3 * time.Hour), "hace 3 horas"},
		{"one day", now.Add(-24 * time.Hour), "hace 1 día"},
		{"days", now.Add(-5 * 24 * time.Hour), "hace 5 días"},
		{"old", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), "1 dic 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ago(tt.input, now))
		})
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "2 mar 2025", Date(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "--", DatePtr(nil))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1.234.567", Money(1234567))
	assert.Equal(t, "$1.234.567,50", Money(1234567.5))
	assert.Equal(t, "-$1.500.000", Money(-1500000))
	assert.Equal(t, "$0", Money(0))
}

func TestHoursAndSizes(t *testing.T) {
	assert.Equal(t, "3 h", Hours(3))
	assert.Equal(t, "2.50 h", Hours(2.5))

	size := int64(2048)
	assert.Equal(t, "2.0 kB", FileSize(&size))
	assert.Equal(t, "--", FileSize(nil))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "01234567", TruncID("0123456789abcdef"))
	assert.Equal(t, "abc", TruncID("abc"))
}

func TestRenderTable_AlignsAndTruncates(t *testing.T) {
	long := strings.Repeat("x", MaxCellWidth+10)
	out := RenderTable([]string{"A", "B"}, [][]string{{"uno", long}, {"dos"}})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "uno  "))
	assert.Contains(t, lines[2], strings.Repeat("x", MaxCellWidth-1)+"…")
	assert.NotContains(t, out, long)
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", RenderProgress(50, 10))
	assert.Equal(t, "[██████████] 100%", RenderProgress(150, 10))
	assert.Equal(t, "[░░]   0%", RenderProgress(-3, 1))
}

func TestRenderBadgeAndToast(t *testing.T) {
	assert.Equal(t, "● En Revisión", RenderBadge(aggregate.DeliverableBadge(domain.DeliverableInReview)))
	assert.Equal(t, "✔ Entregable creado listo", Toast(toast.Toast{Kind: toast.KindSuccess, Title: "Entregable creado", Message: "listo"}))
	assert.Equal(t, "✖ Error", Toast(toast.Toast{Kind: toast.KindError, Title: "Error"}))
}

func TestFormatDashboard_EmptyStates(t *testing.T) {
	out := FormatDashboard(aggregate.BuildDashboard(nil, nil, nil, nil))
	assert.Contains(t, out, "No hay proyectos activos actualmente.")
	assert.Contains(t, out, "Facturación Total")
	assert.Contains(t, out, "0 de 0 completado")
}

func TestFormatInbox(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Contains(t, FormatInbox(nil, 0, now), "No tienes notificaciones")

	items := []*domain.Notification{
		{Title: "Nueva tarea asignada", Message: "Se te asignó «API»", CreatedAt: now.Add(-2 * time.Hour)},
		{Title: "Entregable aprobado", Read: true, CreatedAt: now.Add(-48 * time.Hour)},
	}
	out := FormatInbox(items, 1, now)
	assert.Contains(t, out, "NOTIFICACIONES (1 SIN LEER)")
	assert.Contains(t, out, "● Nueva tarea asignada hace 2 horas")
	assert.Contains(t, out, "Entregable aprobado hace 2 días")
}
