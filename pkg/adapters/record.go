package adapters

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/models/store"
	"github.com/de-tools/practice-atlas/pkg/services/fiscal"
)

// MapStoreRecordToDomain coerces a raw row into an aggregation-ready record.
// A bad amount or date never fails the row: amounts fall back to zero and an
// unparseable date is flagged via HasDate so the engine can route the row to
// its fallback bucket instead of dropping it.
func MapStoreRecordToDomain(r store.TimeRecord) domain.TimeRecord {
	record := domain.TimeRecord{
		Staff:          strings.TrimSpace(r.Staff),
		AccountManager: strings.TrimSpace(r.AccountManager),
		JobManager:     strings.TrimSpace(r.JobManager),
		ClientGroup:    strings.TrimSpace(r.ClientGroup),
		Hours:          fiscal.Hours(r.TimeValue),
		Amount:         ParseAmount(r.Amount),
		Billable:       r.Billable,
		CapacityRed:    r.CapacityRed,
		Billed:         r.Billed,
	}

	if date, err := time.Parse("2006-01-02", r.Date); err == nil {
		record.Date = date
		record.HasDate = true
	}

	return record
}

func MapStoreRecordsToDomain(rows []store.TimeRecord) []domain.TimeRecord {
	records := make([]domain.TimeRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, MapStoreRecordToDomain(r))
	}
	return records
}

// ParseAmount reads a decimal that may arrive as text. Parse failures and
// NaN coerce to zero so one bad row cannot abort an aggregation.
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
