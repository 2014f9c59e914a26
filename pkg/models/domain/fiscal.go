package domain

import "time"

// FiscalWindow is one July 1 – June 30 accounting period, possibly truncated
// to an as-of date for same-point-in-time comparisons. Computed fresh per
// request, never persisted.
type FiscalWindow struct {
	Start     time.Time
	End       time.Time
	StartYear int
	EndYear   int
}

// Contains reports whether d falls inside the window, bounds inclusive.
// Dates are compared at day precision.
func (w FiscalWindow) Contains(d time.Time) bool {
	day := d.Format("2006-01-02")
	return day >= w.Start.Format("2006-01-02") && day <= w.End.Format("2006-01-02")
}

// Label renders the window as e.g. "2024-2025".
func (w FiscalWindow) Label() string {
	return w.Start.Format("2006") + "-" + w.End.Format("2006")
}
