package domain

import "time"

// Practice identifies one tenant of the reporting service. Every fetch and
// aggregation is scoped to a single practice.
type Practice struct {
	Name string
}

// TimeRecord is a coerced row ready for aggregation: the date is parsed, the
// amount is numeric and the packed time value is decoded to fractional hours.
type TimeRecord struct {
	Date           time.Time
	HasDate        bool
	Staff          string
	AccountManager string
	JobManager     string
	ClientGroup    string
	Hours          float64
	Amount         float64
	Billable       bool
	CapacityRed    bool
	Billed         bool
}
