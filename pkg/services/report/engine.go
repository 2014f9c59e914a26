package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/services/fiscal"
)

// Uncategorized is the bucket for records whose grouping field is blank. The
// bucket participates in totals but never in option lists.
const Uncategorized = "Uncategorized"

// disbursementStaff marks pass-through expense rows the source system files
// under a pseudo staff member; they are excluded from staff reports entirely.
const disbursementStaff = "disbursement"

// ValueFunc extracts the value being summed from a record.
type ValueFunc func(domain.TimeRecord) float64

func AmountOf(r domain.TimeRecord) float64 { return r.Amount }
func HoursOf(r domain.TimeRecord) float64  { return r.Hours }

// MonthlySeries sums a value into twelve fiscal-ordered month buckets for two
// parallel periods. Records outside their window, including the same-point
// clamp, are excluded rather than zero-filled; months without records stay at
// zero. Sums are rounded at this boundary only.
func MonthlySeries(
	currentWin, priorWin domain.FiscalWindow,
	current, prior []domain.TimeRecord,
	value ValueFunc,
	precision int,
) []domain.MonthlyPoint {
	var currentTotals, priorTotals [12]float64

	for _, r := range current {
		if !r.HasDate || !currentWin.Contains(r.Date) {
			continue
		}
		currentTotals[fiscal.MonthIndex(r.Date.Month())] += value(r)
	}
	for _, r := range prior {
		if !r.HasDate || !priorWin.Contains(r.Date) {
			continue
		}
		priorTotals[fiscal.MonthIndex(r.Date.Month())] += value(r)
	}

	labels := fiscal.MonthLabels()
	points := make([]domain.MonthlyPoint, 12)
	for i := range points {
		points[i] = domain.MonthlyPoint{
			Month:   labels[i],
			Current: Round(currentTotals[i], precision),
			Prior:   Round(priorTotals[i], precision),
		}
	}
	return points
}

// EntityOptions parameterises a per-entity aggregation; report assemblers
// supply only field names and value extractors.
type EntityOptions struct {
	Key        domain.Field
	Value      ValueFunc
	Companions []domain.Field
	Precision  int

	// SuppressZero drops entities whose current AND prior totals round to
	// zero; applied after rounding so a true 0.004 is still suppressed.
	SuppressZero bool
}

type entityBucket struct {
	current, prior float64
	trackers       map[domain.Field]*modeTracker
}

// EntityTotals sums a value per entity for two periods and attaches the mode
// of each companion field. Blank keys collapse into the Uncategorized bucket.
// Staff groupings exclude disbursement rows entirely. Results are ordered
// descending by current total, insertion order on ties.
func EntityTotals(
	opts EntityOptions,
	current, prior []domain.TimeRecord,
) []domain.EntityTotal {
	buckets := make(map[string]*entityBucket)
	var order []string

	bucket := func(r domain.TimeRecord) *entityBucket {
		key := FieldValue(r, opts.Key)
		if key == "" {
			key = Uncategorized
		}
		b, ok := buckets[key]
		if !ok {
			b = &entityBucket{trackers: make(map[domain.Field]*modeTracker)}
			buckets[key] = b
			order = append(order, key)
		}
		return b
	}

	for _, r := range current {
		if excluded(r, opts.Key) {
			continue
		}
		b := bucket(r)
		b.current += opts.Value(r)
		for _, f := range opts.Companions {
			t, ok := b.trackers[f]
			if !ok {
				t = newModeTracker()
				b.trackers[f] = t
			}
			t.Add(FieldValue(r, f))
		}
	}
	for _, r := range prior {
		if excluded(r, opts.Key) {
			continue
		}
		bucket(r).prior += opts.Value(r)
	}

	totals := make([]domain.EntityTotal, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		t := domain.EntityTotal{
			Name:    key,
			Current: Round(b.current, opts.Precision),
			Prior:   Round(b.prior, opts.Precision),
		}
		if opts.SuppressZero && t.Current == 0 && t.Prior == 0 {
			continue
		}
		if len(opts.Companions) > 0 {
			t.Companions = make(map[string]string, len(opts.Companions))
			for _, f := range opts.Companions {
				if tracker, ok := b.trackers[f]; ok {
					t.Companions[string(f)] = tracker.Mode()
				} else {
					t.Companions[string(f)] = ""
				}
			}
		}
		totals = append(totals, t)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Current > totals[j].Current
	})
	return totals
}

// AgingBuckets sums amounts into age bands measured in days from asOf to each
// record's date. Future-dated and dateless rows land in the under-30 band, so
// the bands always add up to Total exactly.
func AgingBuckets(rows []domain.TimeRecord, asOf time.Time) domain.AgingSummary {
	var s domain.AgingSummary
	for _, r := range rows {
		amount := r.Amount
		s.Total += amount

		age := -1
		if r.HasDate {
			age = daysBetween(r.Date, asOf)
		}

		switch {
		case age < 30:
			s.LessThan30 += amount
		case age < 60:
			s.Days30to60 += amount
		case age < 90:
			s.Days60to90 += amount
		case age < 120:
			s.Days90to120 += amount
		default:
			s.Days120Plus += amount
		}
	}
	return s
}

// AgingPercentages expresses each band as a whole percentage of the total.
func AgingPercentages(s domain.AgingSummary) domain.AgingSummary {
	if s.Total == 0 {
		return domain.AgingSummary{}
	}
	pct := func(v float64) float64 { return Round(v/s.Total*100, 0) }
	return domain.AgingSummary{
		LessThan30:  pct(s.LessThan30),
		Days30to60:  pct(s.Days30to60),
		Days60to90:  pct(s.Days60to90),
		Days90to120: pct(s.Days90to120),
		Days120Plus: pct(s.Days120Plus),
		Total:       100,
	}
}

// RoundSummary rounds every band of a summary to whole units for output.
func RoundSummary(s domain.AgingSummary) domain.AgingSummary {
	return domain.AgingSummary{
		LessThan30:  Round(s.LessThan30, 0),
		Days30to60:  Round(s.Days30to60, 0),
		Days60to90:  Round(s.Days60to90, 0),
		Days90to120: Round(s.Days90to120, 0),
		Days120Plus: Round(s.Days120Plus, 0),
		Total:       Round(s.Total, 0),
	}
}

// Names lists the distinct non-blank values of a field, ascending. Staff
// listings omit the disbursement pseudo member.
func Names(rows []domain.TimeRecord, field domain.Field) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, r := range rows {
		if excluded(r, field) {
			continue
		}
		v := FieldValue(r, field)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		names = append(names, v)
	}
	sort.Strings(names)
	return names
}

// FieldValue reads the categorical field off a record; values are already
// whitespace-trimmed by the adapters.
func FieldValue(r domain.TimeRecord, f domain.Field) string {
	switch f {
	case domain.FieldStaff:
		return r.Staff
	case domain.FieldAccountManager:
		return r.AccountManager
	case domain.FieldJobManager:
		return r.JobManager
	case domain.FieldClientGroup:
		return r.ClientGroup
	}
	return ""
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(v*p) / p
}

func excluded(r domain.TimeRecord, key domain.Field) bool {
	return key == domain.FieldStaff && strings.EqualFold(r.Staff, disbursementStaff)
}

func daysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
