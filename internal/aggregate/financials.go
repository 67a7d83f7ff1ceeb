// Package aggregate holds the pure functions behind the dashboard and the
// list filters: financial totals, operational stats, filter predicates and
// status badges.
package aggregate

import (
	"math"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// Financials are totals over every time log, valued at the logging user's rates.
type Financials struct {
	TotalCost    float64
	TotalRevenue float64
	Profit       float64
	// ProfitMargin is a percentage of revenue; 0 when there is no revenue.
	ProfitMargin float64
}

// ComputeFinancials sums cost and revenue over entries. Missing or
// non-finite hours and rates count as zero.
func ComputeFinancials(entries []domain.TimeLogEntry) Financials {
	var f Financials
	for _, e := range entries {
		hours := finite(e.Hours)
		f.TotalCost += hours * finite(e.CostRate)
		f.TotalRevenue += hours * finite(e.BillableRate)
	}
	f.Profit = f.TotalRevenue - f.TotalCost
	if f.TotalRevenue > 0 {
		f.ProfitMargin = f.Profit / f.TotalRevenue * 100
	}
	return f
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
