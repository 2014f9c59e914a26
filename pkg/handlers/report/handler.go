package report

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/practice-atlas/pkg/adapters"
	"github.com/de-tools/practice-atlas/pkg/models/api"
	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/services/fiscal"
	"github.com/de-tools/practice-atlas/pkg/services/practice"
	reportsvc "github.com/de-tools/practice-atlas/pkg/services/report"
)

// optionFields maps the {field} URL segment to a record field.
var optionFields = map[string]domain.Field{
	"staff":        domain.FieldStaff,
	"partners":     domain.FieldAccountManager,
	"managers":     domain.FieldJobManager,
	"clientgroups": domain.FieldClientGroup,
}

type Handler struct {
	explorer practice.Explorer
	now      func() time.Time
}

func NewHandler(explorer practice.Explorer) *Handler {
	return &Handler{explorer: explorer, now: time.Now}
}

func (h *Handler) ListPractices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	practices, err := h.explorer.ListPractices(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list practices")
		http.Error(w, "failed to list practices", http.StatusInternalServerError)
		return
	}

	response := make([]api.Practice, 0, len(practices))
	for _, p := range practices {
		response = append(response, api.Practice{Name: p.Name})
	}
	h.encode(w, r, response)
}

func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	h.monthly(w, r, reportsvc.Reporter.Revenue)
}

func (h *Handler) BillableHours(w http.ResponseWriter, r *http.Request) {
	h.monthly(w, r, reportsvc.Reporter.BillableHours)
}

func (h *Handler) StaffProductivity(w http.ResponseWriter, r *http.Request) {
	h.entity(w, r, reportsvc.Reporter.StaffProductivity)
}

func (h *Handler) Recoverability(w http.ResponseWriter, r *http.Request) {
	h.entity(w, r, reportsvc.Reporter.Recoverability)
}

func (h *Handler) ClientGroups(w http.ResponseWriter, r *http.Request) {
	h.entity(w, r, reportsvc.Reporter.ClientGroups)
}

func (h *Handler) WIPAging(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	reporter, asOf, filter, ok := h.reportParams(w, r)
	if !ok {
		return
	}

	summary, percentages, err := reporter.WIPAging(ctx, asOf, filter)
	if err != nil {
		logger.Error().Err(err).Msg("wip aging report failed")
		http.Error(w, "failed to fetch data", http.StatusInternalServerError)
		return
	}

	h.encode(w, r, adapters.MapAgingSummaryDomainToApi(summary, percentages))
}

func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	field, ok := optionFields[chi.URLParam(r, "field")]
	if !ok {
		http.Error(w, "unknown option field", http.StatusNotFound)
		return
	}

	reporter, _, filter, ok := h.reportParams(w, r)
	if !ok {
		return
	}

	names, err := reporter.Options(ctx, field, filter)
	if err != nil {
		logger.Error().Err(err).Msg("options listing failed")
		http.Error(w, "failed to fetch data", http.StatusInternalServerError)
		return
	}

	h.encode(w, r, names)
}

type monthlyFunc func(reportsvc.Reporter, context.Context, time.Time, domain.RecordFilter) ([]domain.MonthlyPoint, error)

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request, run monthlyFunc) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	reporter, asOf, filter, ok := h.reportParams(w, r)
	if !ok {
		return
	}

	points, err := run(reporter, ctx, asOf, filter)
	if err != nil {
		logger.Error().Err(err).Msg("monthly report failed")
		http.Error(w, "failed to fetch data", http.StatusInternalServerError)
		return
	}

	h.encode(w, r, adapters.MapMonthlyPointsDomainToApi(points))
}

type entityFunc func(reportsvc.Reporter, context.Context, time.Time, domain.RecordFilter) ([]domain.EntityTotal, error)

func (h *Handler) entity(w http.ResponseWriter, r *http.Request, run entityFunc) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	reporter, asOf, filter, ok := h.reportParams(w, r)
	if !ok {
		return
	}

	totals, err := run(reporter, ctx, asOf, filter)
	if err != nil {
		logger.Error().Err(err).Msg("entity report failed")
		http.Error(w, "failed to fetch data", http.StatusInternalServerError)
		return
	}

	h.encode(w, r, adapters.MapEntityTotalsDomainToApi(totals))
}

// reportParams resolves the practice's reporter, the as-of date and the
// filter payload. A malformed filters payload is treated as no filters; a
// malformed explicit asOf is a server error.
func (h *Handler) reportParams(
	w http.ResponseWriter,
	r *http.Request,
) (reportsvc.Reporter, time.Time, domain.RecordFilter, bool) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "practice")

	reporter, err := h.explorer.GetReporter(ctx, domain.Practice{Name: name})
	if err != nil {
		logger.Error().Err(err).Str("practice", name).Msg("unknown practice")
		http.Error(w, "practice not found", http.StatusNotFound)
		return nil, time.Time{}, domain.RecordFilter{}, false
	}

	asOf, err := fiscal.ParseAsOf(r.URL.Query().Get("asOf"), h.now())
	if err != nil {
		logger.Error().Err(err).Str("practice", name).Msg("bad as-of date")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, time.Time{}, domain.RecordFilter{}, false
	}

	filter := domain.ParseFilters(r.URL.Query().Get("filters"))
	return reporter, asOf, filter, true
}

func (h *Handler) encode(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
