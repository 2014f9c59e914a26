package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/services/fiscal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(day time.Time, amount float64) domain.TimeRecord {
	return domain.TimeRecord{Date: day, HasDate: true, Amount: amount}
}

func TestMonthlySeries(t *testing.T) {
	current, prior := fiscal.Comparison(date(2025, time.June, 25))

	rows := []domain.TimeRecord{
		rec(date(2024, time.July, 5), 100),
		rec(date(2024, time.August, 10), 200),
		rec(date(2025, time.June, 20), 50),
	}

	points := MonthlySeries(current, prior, rows, nil, AmountOf, 0)

	require.Len(t, points, 12)
	assert.Equal(t, "July", points[0].Month)
	assert.Equal(t, 100.0, points[0].Current)
	assert.Equal(t, 200.0, points[1].Current)
	assert.Equal(t, 50.0, points[11].Current)

	var total float64
	for _, p := range points {
		total += p.Current
		assert.Zero(t, p.Prior)
	}
	assert.Equal(t, 350.0, total)
}

func TestMonthlySeries_ExcludesRowsOutsideWindow(t *testing.T) {
	// same-point comparison as of mid October: rows after the clamp and rows
	// without a usable date are excluded, not zero-filled elsewhere
	current, prior := fiscal.Comparison(date(2024, time.October, 15))

	currentRows := []domain.TimeRecord{
		rec(date(2024, time.September, 1), 40),
		rec(date(2024, time.November, 1), 999), // past the as-of clamp
		{Amount: 999},                          // no date
	}
	priorRows := []domain.TimeRecord{
		rec(date(2023, time.September, 1), 10),
		rec(date(2023, time.December, 1), 999), // past the prior clamp
	}

	points := MonthlySeries(current, prior, currentRows, priorRows, AmountOf, 0)

	assert.Equal(t, 40.0, points[2].Current) // September
	assert.Equal(t, 10.0, points[2].Prior)
	for i, p := range points {
		if i == 2 {
			continue
		}
		assert.Zero(t, p.Current, p.Month)
		assert.Zero(t, p.Prior, p.Month)
	}
}

func TestEntityTotals_GroupsAndSorts(t *testing.T) {
	staff := func(name string, hours float64) domain.TimeRecord {
		return domain.TimeRecord{Date: date(2024, time.August, 1), HasDate: true, Staff: name, Hours: hours}
	}

	totals := EntityTotals(EntityOptions{
		Key:       domain.FieldStaff,
		Value:     HoursOf,
		Precision: 2,
	}, []domain.TimeRecord{
		staff("Alice", 2),
		staff("Bob", 5),
		staff("Alice", 1.5),
	}, []domain.TimeRecord{
		staff("Alice", 4),
	})

	require.Len(t, totals, 2)
	assert.Equal(t, domain.EntityTotal{Name: "Bob", Current: 5, Prior: 0}, totals[0])
	assert.Equal(t, domain.EntityTotal{Name: "Alice", Current: 3.5, Prior: 4}, totals[1])
}

func TestEntityTotals_BlankKeyFallsIntoUncategorized(t *testing.T) {
	totals := EntityTotals(EntityOptions{
		Key:   domain.FieldClientGroup,
		Value: AmountOf,
	}, []domain.TimeRecord{
		{ClientGroup: "", Amount: 30, HasDate: true, Date: date(2024, time.August, 1)},
		{ClientGroup: "North", Amount: 10, HasDate: true, Date: date(2024, time.August, 1)},
	}, nil)

	require.Len(t, totals, 2)
	assert.Equal(t, Uncategorized, totals[0].Name)
	assert.Equal(t, 30.0, totals[0].Current)
}

func TestEntityTotals_DisbursementExcludedFromStaffReports(t *testing.T) {
	totals := EntityTotals(EntityOptions{
		Key:   domain.FieldStaff,
		Value: AmountOf,
	}, []domain.TimeRecord{
		{Staff: "Disbursement", Amount: 500},
		{Staff: "DISBURSEMENT", Amount: 200},
		{Staff: "Alice", Amount: 10},
	}, []domain.TimeRecord{
		{Staff: "disbursement", Amount: 300},
	})

	require.Len(t, totals, 1)
	assert.Equal(t, "Alice", totals[0].Name)
	assert.Equal(t, 10.0, totals[0].Current)
}

func TestEntityTotals_ZeroSuppressionAfterRounding(t *testing.T) {
	totals := EntityTotals(EntityOptions{
		Key:          domain.FieldStaff,
		Value:        AmountOf,
		Precision:    2,
		SuppressZero: true,
	}, []domain.TimeRecord{
		{Staff: "Alice", Amount: 0.004}, // rounds to 0.00
		{Staff: "Bob", Amount: 0.006},   // rounds to 0.01
	}, nil)

	require.Len(t, totals, 1)
	assert.Equal(t, "Bob", totals[0].Name)
	assert.Equal(t, 0.01, totals[0].Current)
}

func TestEntityTotals_CompanionModeSelection(t *testing.T) {
	group := func(manager string) domain.TimeRecord {
		return domain.TimeRecord{ClientGroup: "North", AccountManager: manager, Amount: 1}
	}

	t.Run("highest count wins", func(t *testing.T) {
		totals := EntityTotals(EntityOptions{
			Key:        domain.FieldClientGroup,
			Value:      AmountOf,
			Companions: []domain.Field{domain.FieldAccountManager},
		}, []domain.TimeRecord{group("A"), group("B"), group("A")}, nil)

		require.Len(t, totals, 1)
		assert.Equal(t, "A", totals[0].Companions[string(domain.FieldAccountManager)])
	})

	t.Run("tie resolves to first seen", func(t *testing.T) {
		totals := EntityTotals(EntityOptions{
			Key:        domain.FieldClientGroup,
			Value:      AmountOf,
			Companions: []domain.Field{domain.FieldAccountManager},
		}, []domain.TimeRecord{group("A"), group("B")}, nil)

		require.Len(t, totals, 1)
		assert.Equal(t, "A", totals[0].Companions[string(domain.FieldAccountManager)])
	})
}

func TestAgingBuckets_SumInvariant(t *testing.T) {
	asOf := date(2024, time.October, 1)

	rows := []domain.TimeRecord{
		rec(date(2024, time.September, 25), 100), // 6 days
		rec(date(2024, time.August, 20), 200),    // 42 days
		rec(date(2024, time.July, 10), 300),      // 83 days
		rec(date(2024, time.June, 10), 400),      // 113 days
		rec(date(2024, time.January, 1), 500),    // 274 days
		rec(date(2024, time.December, 25), 60),   // future date
		{Amount: 70},                             // no date
	}

	s := AgingBuckets(rows, asOf)

	assert.Equal(t, 230.0, s.LessThan30) // 100 + future 60 + dateless 70
	assert.Equal(t, 200.0, s.Days30to60)
	assert.Equal(t, 300.0, s.Days60to90)
	assert.Equal(t, 400.0, s.Days90to120)
	assert.Equal(t, 500.0, s.Days120Plus)

	sum := s.LessThan30 + s.Days30to60 + s.Days60to90 + s.Days90to120 + s.Days120Plus
	assert.Equal(t, s.Total, sum)
	assert.Equal(t, 1630.0, s.Total)
}

func TestAgingBuckets_BoundaryDays(t *testing.T) {
	asOf := date(2024, time.October, 1)

	tests := []struct {
		days int
		pick func(domain.AgingSummary) float64
	}{
		{29, func(s domain.AgingSummary) float64 { return s.LessThan30 }},
		{30, func(s domain.AgingSummary) float64 { return s.Days30to60 }},
		{59, func(s domain.AgingSummary) float64 { return s.Days30to60 }},
		{60, func(s domain.AgingSummary) float64 { return s.Days60to90 }},
		{90, func(s domain.AgingSummary) float64 { return s.Days90to120 }},
		{119, func(s domain.AgingSummary) float64 { return s.Days90to120 }},
		{120, func(s domain.AgingSummary) float64 { return s.Days120Plus }},
	}

	for _, tt := range tests {
		s := AgingBuckets([]domain.TimeRecord{rec(asOf.AddDate(0, 0, -tt.days), 1)}, asOf)
		assert.Equal(t, 1.0, tt.pick(s), "age %d days", tt.days)
	}
}

func TestAgingPercentages(t *testing.T) {
	s := domain.AgingSummary{
		LessThan30:  50,
		Days30to60:  25,
		Days120Plus: 25,
		Total:       100,
	}

	p := AgingPercentages(s)

	assert.Equal(t, 50.0, p.LessThan30)
	assert.Equal(t, 25.0, p.Days30to60)
	assert.Zero(t, p.Days60to90)
	assert.Equal(t, 25.0, p.Days120Plus)
	assert.Equal(t, 100.0, p.Total)
}

func TestAgingPercentages_ZeroTotal(t *testing.T) {
	assert.Equal(t, domain.AgingSummary{}, AgingPercentages(domain.AgingSummary{}))
}

func TestNames(t *testing.T) {
	rows := []domain.TimeRecord{
		{Staff: "Charlie"},
		{Staff: "Alice"},
		{Staff: ""},
		{Staff: "Charlie"},
		{Staff: "Disbursement"},
		{Staff: "Bob"},
	}

	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, Names(rows, domain.FieldStaff))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.2345, 2))
	assert.Equal(t, 1.24, Round(1.236, 2))
	assert.Equal(t, 123.0, Round(123.4, 0))
	assert.Equal(t, 0.0, Round(0.004, 2))
}
