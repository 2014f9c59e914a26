package domain

import "time"

// Report is the renderable form of one report family, used by the terminal
// runtime.
type Report struct {
	Title      string
	Practice   string
	Period     TimePeriod
	Comparison TimePeriod
	Rows       []ReportRow
	Summary    map[string]float64
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start time.Time
	End   time.Time
}

// ReportRow is one line of a two-period report table.
type ReportRow struct {
	Name    string
	Current float64
	Prior   float64
}
