package domain

import "time"

type TimeLog struct {
	ID          string
	TaskID      string
	UserID      *string
	Date        time.Time
	Hours       float64
	Description string
	CreatedAt   time.Time
}

// Record exposes the log as the key-value shape the validation schemas use.
func (l *TimeLog) Record() map[string]any {
	date := ""
	if !l.Date.IsZero() {
		date = l.Date.Format(DateLayout)
	}
	return map[string]any{
		"tarea_id":    l.TaskID,
		"horas":       l.Hours,
		"fecha":       date,
		"descripcion": l.Description,
	}
}

// TimeLogEntry is a time log joined with its task and user. Rates are
// zero-coalesced so aggregation never needs to guard them.
type TimeLogEntry struct {
	TimeLog
	TaskName     string
	ProjectID    string
	UserName     string
	CostRate     float64
	BillableRate float64
}

// NewTimeLogEntry builds an entry from loosely typed joined values. Missing or
// non-numeric hours and rates become zero.
func NewTimeLogEntry(log TimeLog, hours, costRate, billableRate any) TimeLogEntry {
	log.Hours = Float(hours)
	return TimeLogEntry{
		TimeLog:      log,
		CostRate:     Float(costRate),
		BillableRate: Float(billableRate),
	}
}

// Cost is hours times the user's internal cost rate.
func (e TimeLogEntry) Cost() float64 { return e.Hours * e.CostRate }

// Revenue is hours times the user's billable rate.
func (e TimeLogEntry) Revenue() float64 { return e.Hours * e.BillableRate }
