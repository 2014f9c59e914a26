package domain

// MonthlyPoint is one fiscal-ordered month bucket with totals for the current
// and prior periods.
type MonthlyPoint struct {
	Month   string
	Current float64
	Prior   float64
}

// EntityTotal is a per-entity pair of period totals plus any mode-selected
// companion values (e.g. the account manager most often seen on a client
// group's records).
type EntityTotal struct {
	Name       string
	Current    float64
	Prior      float64
	Companions map[string]string
}

// AgingSummary buckets a monetary total by age in days relative to a reference
// date. Bucket sums always equal Total: rows with future or unusable dates are
// counted in LessThan30 rather than dropped.
type AgingSummary struct {
	LessThan30  float64
	Days30to60  float64
	Days60to90  float64
	Days90to120 float64
	Days120Plus float64
	Total       float64
}
