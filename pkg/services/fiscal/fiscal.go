package fiscal

import (
	"fmt"
	"time"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
)

// Fiscal years run July 1 to June 30 for every practice; there is no
// per-tenant override in the source system.

const dayFormat = "2006-01-02"

var monthLabels = [12]string{
	"July", "August", "September", "October", "November", "December",
	"January", "February", "March", "April", "May", "June",
}

// Window returns the fiscal year containing d.
func Window(d time.Time) domain.FiscalWindow {
	startYear := d.Year()
	if d.Month() < time.July {
		startYear--
	}
	return windowFor(startYear)
}

// Prior returns the fiscal year immediately before w.
func Prior(w domain.FiscalWindow) domain.FiscalWindow {
	return windowFor(w.StartYear - 1)
}

// Comparison returns the current and prior fiscal windows truncated to the
// same point in time: the current window ends at asOf, the prior window ends
// at asOf shifted back one calendar year. The shifted date is clamped to the
// prior window's own June 30 so a normalised leap-day shift can never run
// past the fiscal year end.
func Comparison(asOf time.Time) (current, prior domain.FiscalWindow) {
	current = Window(asOf)
	prior = Prior(current)

	current.End = day(asOf)
	shifted := day(asOf.AddDate(-1, 0, 0))
	if shifted.Format(dayFormat) < prior.End.Format(dayFormat) {
		prior.End = shifted
	}
	return current, prior
}

// MonthIndex maps a calendar month to fiscal order: July is 0, June is 11.
func MonthIndex(m time.Month) int {
	if m >= time.July {
		return int(m - time.July)
	}
	return int(m) + 12 - int(time.July)
}

// MonthLabels returns the twelve month names in fiscal order.
func MonthLabels() []string {
	labels := make([]string, len(monthLabels))
	copy(labels, monthLabels[:])
	return labels
}

// ParseAsOf resolves an explicit as-of date parameter. An empty value falls
// back to the supplied reference date; a value that fails to parse is an
// error for the caller to surface.
func ParseAsOf(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return day(fallback), nil
	}
	parsed, err := time.Parse(dayFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as-of date %q: %w", value, err)
	}
	return parsed, nil
}

func windowFor(startYear int) domain.FiscalWindow {
	return domain.FiscalWindow{
		Start:     time.Date(startYear, time.July, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(startYear+1, time.June, 30, 0, 0, 0, 0, time.UTC),
		StartYear: startYear,
		EndYear:   startYear + 1,
	}
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
