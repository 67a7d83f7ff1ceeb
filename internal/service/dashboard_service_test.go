package service

import (
	"context"
	"testing"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardLoad_ComputesFinancialsAndStats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	ana := h.user(t, "Ana Pérez", domain.RoleDeveloper) // cost 20, billable 50

	active := testutil.NewTestProject("Portal", testutil.WithProjectStatus(domain.ProjectInProgress))
	require.NoError(t, h.repos.Projects.Create(ctx, active))
	done := testutil.NewTestProject("Intranet", testutil.WithProjectStatus(domain.ProjectCompleted))
	require.NoError(t, h.repos.Projects.Create(ctx, done))

	urgent := testutil.NewTestTask(active.ID, "Corregir login", testutil.WithPriority(domain.PriorityHigh))
	require.NoError(t, h.repos.Tasks.Create(ctx, urgent))
	finished := testutil.NewTestTask(active.ID, "Maquetar", testutil.WithTaskStatus(domain.TaskCompleted))
	require.NoError(t, h.repos.Tasks.Create(ctx, finished))

	require.NoError(t, h.svc.TimeLogs.Log(ctx, ana, newTimeLogInput(urgent.ID, 3)))

	d, err := h.svc.Dashboard.Load(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 60, d.Financials.TotalCost, 1e-9)
	assert.InDelta(t, 150, d.Financials.TotalRevenue, 1e-9)
	assert.InDelta(t, 90, d.Financials.Profit, 1e-9)
	assert.InDelta(t, 60, d.Financials.ProfitMargin, 1e-9)

	assert.Equal(t, 1, d.Stats.ActiveProjects)
	assert.Equal(t, 2, d.Stats.TotalTasks)
	assert.Equal(t, 1, d.Stats.CompletedTasks)
	assert.Equal(t, 1, d.Stats.UrgentTasks)
	require.Len(t, d.ActiveProjects, 1)
	assert.Equal(t, "Portal", d.ActiveProjects[0].Name)
	require.Len(t, d.UrgentTasks, 1)
	assert.Equal(t, "Corregir login", d.UrgentTasks[0].Name)
	assert.Equal(t, 1, d.TeamSize())
}

func TestDashboardLoad_EmptyDatabase(t *testing.T) {
	h := newHarness(t)
	d, err := h.svc.Dashboard.Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, d.Financials.ProfitMargin)
	assert.Zero(t, d.Stats.Efficiency)
	assert.Empty(t, d.ActiveProjects)
}
