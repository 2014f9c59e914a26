package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/practice-atlas/pkg/services/fiscal"
	"github.com/de-tools/practice-atlas/pkg/services/practice"
)

type ReportCmd struct {
	practiceName string
	family       string
	asOf         string
	filters      string
	explorer     practice.Explorer
	reporter     *export.Reporter
}

func NewReportCmd(explorer practice.Explorer, reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{explorer: explorer, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run a report for a practice",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.practiceName, "practice", "", "Practice profile name")
	cmd.Flags().StringVar(&rc.family, "family", "",
		"Report family (revenue, billable, productivity, recoverability, clientgroups, wip)")
	cmd.Flags().StringVar(&rc.asOf, "as-of", "", "As-of date (2006-01-02, default today)")
	cmd.Flags().StringVar(&rc.filters, "filters", "", `JSON filter payload, e.g. [{"type":"staff","value":"Alice"}]`)

	_ = cmd.MarkFlagRequired("practice")
	_ = cmd.MarkFlagRequired("family")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	reporter, err := rc.explorer.GetReporter(ctx, domain.Practice{Name: rc.practiceName})
	if err != nil {
		return fmt.Errorf("failed to resolve practice %q: %w", rc.practiceName, err)
	}

	asOf, err := fiscal.ParseAsOf(rc.asOf, time.Now())
	if err != nil {
		return err
	}
	filter := domain.ParseFilters(rc.filters)
	current, prior := fiscal.Comparison(asOf)

	report := &domain.Report{
		Practice: rc.practiceName,
		Period:   domain.TimePeriod{Start: current.Start, End: current.End},
		Comparison: domain.TimePeriod{
			Start: prior.Start,
			End:   prior.End,
		},
	}

	switch rc.family {
	case "revenue", "billable":
		var points []domain.MonthlyPoint
		if rc.family == "revenue" {
			report.Title = "Revenue by Month"
			points, err = reporter.Revenue(ctx, asOf, filter)
		} else {
			report.Title = "Billable Hours by Month"
			points, err = reporter.BillableHours(ctx, asOf, filter)
		}
		if err != nil {
			return err
		}
		for _, p := range points {
			report.Rows = append(report.Rows, domain.ReportRow{Name: p.Month, Current: p.Current, Prior: p.Prior})
		}
	case "productivity", "recoverability", "clientgroups":
		var totals []domain.EntityTotal
		switch rc.family {
		case "productivity":
			report.Title = "Hours by Staff"
			totals, err = reporter.StaffProductivity(ctx, asOf, filter)
		case "recoverability":
			report.Title = "Recoverability by Partner"
			totals, err = reporter.Recoverability(ctx, asOf, filter)
		default:
			report.Title = "Amounts by Client Group"
			totals, err = reporter.ClientGroups(ctx, asOf, filter)
		}
		if err != nil {
			return err
		}
		for _, t := range totals {
			report.Rows = append(report.Rows, domain.ReportRow{Name: t.Name, Current: t.Current, Prior: t.Prior})
		}
	case "wip":
		report.Title = "WIP Aging"
		summary, _, err := reporter.WIPAging(ctx, asOf, filter)
		if err != nil {
			return err
		}
		report.Summary = map[string]float64{
			"< 30 days":   summary.LessThan30,
			"30-59 days":  summary.Days30to60,
			"60-89 days":  summary.Days60to90,
			"90-119 days": summary.Days90to120,
			">= 120 days": summary.Days120Plus,
			"total":       summary.Total,
		}
	default:
		return fmt.Errorf("unknown report family %q", rc.family)
	}

	return rc.reporter.Handle(report)
}
