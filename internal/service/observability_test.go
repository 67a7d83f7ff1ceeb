package service

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withObservers(observers ...UseCaseObserver) option {
	return func(d *Deps, _ *sql.DB) { d.Observers = observers }
}

func TestObservers_LogAndCountUseCases(t *testing.T) {
	var logs bytes.Buffer
	reg := prometheus.NewRegistry()
	metrics := NewMetricsObserver(reg)
	h := newHarness(t, withObservers(NewLogUseCaseObserver(&logs), metrics, nil))
	ctx := context.Background()
	dev := h.user(t, "Ana Pérez", domain.RoleDeveloper)

	require.NoError(t, h.svc.Projects.Create(ctx, &domain.Project{Name: "Portal clientes"}))
	err := h.svc.Companies.Create(ctx, dev, &domain.Company{Name: "Acme"})
	require.Error(t, err)

	assert.Contains(t, logs.String(), "use_case=create-project")
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "use_case=create-company")

	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.total.WithLabelValues("create-project", "true")))
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.total.WithLabelValues("create-company", "false")))
	assert.Equal(t, 2, promtest.CollectAndCount(metrics.duration))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))

	single := NewLogUseCaseObserver(&bytes.Buffer{})
	assert.Same(t, single, useCaseObserverOrNoop([]UseCaseObserver{nil, single}))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
