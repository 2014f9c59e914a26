package api

type Practice struct {
	Name string `json:"name"`
}

// MonthlyPoint carries the exact key casing the dashboard charts bind to; the
// year columns are display labels, not identifiers.
type MonthlyPoint struct {
	Month       string  `json:"month"`
	CurrentYear float64 `json:"Current Year"`
	LastYear    float64 `json:"Last Year"`
}

type EntityTotal struct {
	Name        string            `json:"name"`
	CurrentYear float64           `json:"currentYear"`
	LastYear    float64           `json:"lastYear"`
	Companions  map[string]string `json:"companions,omitempty"`
}

type AgingPercentages struct {
	LessThan30  float64 `json:"lessThan30"`
	Days30to60  float64 `json:"days30to60"`
	Days60to90  float64 `json:"days60to90"`
	Days90to120 float64 `json:"days90to120"`
	Days120Plus float64 `json:"days120Plus"`
}

type AgingSummary struct {
	LessThan30  float64          `json:"lessThan30"`
	Days30to60  float64          `json:"days30to60"`
	Days60to90  float64          `json:"days60to90"`
	Days90to120 float64          `json:"days90to120"`
	Days120Plus float64          `json:"days120Plus"`
	Total       float64          `json:"total"`
	Percentages AgingPercentages `json:"percentages"`
}
