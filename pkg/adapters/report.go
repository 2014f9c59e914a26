package adapters

import (
	"github.com/de-tools/practice-atlas/pkg/models/api"
	"github.com/de-tools/practice-atlas/pkg/models/domain"
)

func MapMonthlyPointsDomainToApi(points []domain.MonthlyPoint) []api.MonthlyPoint {
	out := make([]api.MonthlyPoint, 0, len(points))
	for _, p := range points {
		out = append(out, api.MonthlyPoint{
			Month:       p.Month,
			CurrentYear: p.Current,
			LastYear:    p.Prior,
		})
	}
	return out
}

func MapEntityTotalsDomainToApi(totals []domain.EntityTotal) []api.EntityTotal {
	out := make([]api.EntityTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, api.EntityTotal{
			Name:        t.Name,
			CurrentYear: t.Current,
			LastYear:    t.Prior,
			Companions:  t.Companions,
		})
	}
	return out
}

func MapAgingSummaryDomainToApi(s domain.AgingSummary, p domain.AgingSummary) api.AgingSummary {
	return api.AgingSummary{
		LessThan30:  s.LessThan30,
		Days30to60:  s.Days30to60,
		Days60to90:  s.Days60to90,
		Days90to120: s.Days90to120,
		Days120Plus: s.Days120Plus,
		Total:       s.Total,
		Percentages: api.AgingPercentages{
			LessThan30:  p.LessThan30,
			Days30to60:  p.Days30to60,
			Days60to90:  p.Days60to90,
			Days90to120: p.Days90to120,
			Days120Plus: p.Days120Plus,
		},
	}
}
