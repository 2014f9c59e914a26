package report

import (
	"context"
	"time"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/services/fiscal"
	"github.com/de-tools/practice-atlas/pkg/services/records"
)

// Reporter assembles the report families for one practice. Every method is a
// pure composition of window computation, fetching and aggregation: the
// reference date is always passed in, never read from the wall clock here.
type Reporter interface {
	// Revenue is the invoiced-amount monthly series for the current and
	// prior fiscal years, truncated to the same point in time.
	Revenue(ctx context.Context, asOf time.Time, filter domain.RecordFilter) ([]domain.MonthlyPoint, error)

	// BillableHours is the decoded billable-hour monthly series.
	BillableHours(ctx context.Context, asOf time.Time, filter domain.RecordFilter) ([]domain.MonthlyPoint, error)

	// StaffProductivity totals decoded hours per staff member.
	StaffProductivity(ctx context.Context, asOf time.Time, filter domain.RecordFilter) ([]domain.EntityTotal, error)

	// Recoverability totals amounts per account manager.
	Recoverability(ctx context.Context, asOf time.Time, filter domain.RecordFilter) ([]domain.EntityTotal, error)

	// ClientGroups totals amounts per client group and attaches the most
	// common account manager and job manager seen on each group's records.
	ClientGroups(ctx context.Context, asOf time.Time, filter domain.RecordFilter) ([]domain.EntityTotal, error)

	// WIPAging buckets outstanding amounts by age relative to asOf.
	WIPAging(ctx context.Context, asOf time.Time, filter domain.RecordFilter) (domain.AgingSummary, domain.AgingSummary, error)

	// Options lists the distinct values of a categorical field for filter
	// dropdowns.
	Options(ctx context.Context, field domain.Field, filter domain.RecordFilter) ([]string, error)
}

type reporter struct {
	practice string
	fetcher  records.Fetcher
}

func NewReporter(practice string, fetcher records.Fetcher) Reporter {
	return &reporter{practice: practice, fetcher: fetcher}
}

func (r *reporter) Revenue(
	ctx context.Context,
	asOf time.Time,
	filter domain.RecordFilter,
) ([]domain.MonthlyPoint, error) {
	current, prior := fiscal.Comparison(asOf)
	currentRows, priorRows, err := r.fetcher.FetchWindows(ctx, r.practice, filter, current, prior)
	if err != nil {
		return nil, err
	}
	return MonthlySeries(current, prior, currentRows, priorRows, AmountOf, 0), nil
}

func (r *reporter) BillableHours(
	ctx context.Context,
	asOf time.Time,
	filter domain.RecordFilter,
) ([]domain.MonthlyPoint, error) {
	filter.Flags = append(filter.Flags, domain.FlagMatch{Flag: domain.FlagBillable, Value: true})
	current, prior := fiscal.Comparison(asOf)
	currentRows, priorRows, err := r.fetcher.FetchWindows(ctx, r.practice, filter, current, prior)
	if err != nil {
		return nil, err
	}
	return MonthlySeries(current, prior, currentRows, priorRows, HoursOf, 2), nil
}

func (r *reporter) StaffProductivity(
	ctx context.Context,
	asOf time.Time,
	filter domain.RecordFilter,
) ([]domain.EntityTotal, error) {
	currentRows, priorRows, err := r.fetchComparison(ctx, asOf, filter)
	if err != nil {
		return nil, err
	}
	return EntityTotals(EntityOptions{
		Key:          domain.FieldStaff,
		Value:        HoursOf,
		Precision:    2,
		SuppressZero: true,
	}, currentRows, priorRows), nil
}

func (r *reporter) Recoverability(
	ctx context.Context,
	asOf time.Time,
	filter domain.RecordFilter,
) ([]domain.EntityTotal, error) {
	currentRows, priorRows, err := r.fetchComparison(ctx, asOf, filter)
	if err != nil {
		return nil, err
	}
	return EntityTotals(EntityOptions{
		Key:          domain.FieldAccountManager,
		Value:        AmountOf,
		Precision:    0,
		SuppressZero: true,
	}, currentRows, priorRows), nil
}

func (r *reporter) ClientGroups(
	ctx context.Context,
	asOf time.Time,
	filter domain.RecordFilter,
) ([]domain.EntityTotal, error) {
	currentRows, priorRows, err := r.fetchComparison(ctx, asOf, filter)
	if err != nil {
		return nil, err
	}
	return EntityTotals(EntityOptions{
		Key:        domain.FieldClientGroup,
		Value:      AmountOf,
		Companions: []domain.Field{domain.FieldAccountManager, domain.FieldJobManager},
		Precision:  0,
	}, currentRows, priorRows), nil
}

func (r *reporter) WIPAging(
	ctx context.Context,
	asOf time.Time,
	filter domain.RecordFilter,
) (domain.AgingSummary, domain.AgingSummary, error) {
	rows, err := r.fetcher.FetchAll(ctx, r.practice, filter)
	if err != nil {
		return domain.AgingSummary{}, domain.AgingSummary{}, err
	}
	summary := AgingBuckets(rows, asOf)
	return RoundSummary(summary), AgingPercentages(summary), nil
}

func (r *reporter) Options(
	ctx context.Context,
	field domain.Field,
	filter domain.RecordFilter,
) ([]string, error) {
	rows, err := r.fetcher.FetchAll(ctx, r.practice, filter)
	if err != nil {
		return nil, err
	}
	return Names(rows, field), nil
}

func (r *reporter) fetchComparison(
	ctx context.Context,
	asOf time.Time,
	filter domain.RecordFilter,
) ([]domain.TimeRecord, []domain.TimeRecord, error) {
	current, prior := fiscal.Comparison(asOf)
	return r.fetcher.FetchWindows(ctx, r.practice, filter, current, prior)
}
