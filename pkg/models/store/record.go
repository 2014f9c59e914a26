package store

// TimeRecord is one row as it comes back from a record store. Numeric and date
// fields stay in their wire form: sources disagree on whether amounts are numbers
// or strings, so coercion happens in the adapters, not here.
type TimeRecord struct {
	ID             string
	Practice       string
	Date           string // 2006-01-02; may be empty or malformed
	Staff          string
	AccountManager string
	JobManager     string
	ClientGroup    string
	TimeValue      *float64 // packed HHMM-style encoding, nil when absent
	Amount         string   // decimal as text, empty when absent
	Billable       bool
	CapacityRed    bool
	Billed         bool
}
