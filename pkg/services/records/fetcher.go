package records

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/de-tools/practice-atlas/pkg/adapters"
	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/models/store"
	recordstore "github.com/de-tools/practice-atlas/pkg/store/records"
)

// PageSize is the row cap the record backends enforce per call.
const PageSize = 1000

type Fetcher interface {
	// FetchAll pages through every row matching the filter and returns the
	// coerced records. Any page failure aborts the whole fetch.
	FetchAll(ctx context.Context, practice string, filter domain.RecordFilter) ([]domain.TimeRecord, error)

	// FetchWindows runs one fetch per fiscal window concurrently and joins
	// the results. The windows address disjoint date ranges, so this is a
	// latency optimisation only.
	FetchWindows(
		ctx context.Context,
		practice string,
		filter domain.RecordFilter,
		current, prior domain.FiscalWindow,
	) (currentRows, priorRows []domain.TimeRecord, err error)
}

type fetcher struct {
	store    recordstore.Store
	pageSize int
}

func NewFetcher(store recordstore.Store) Fetcher {
	return &fetcher{store: store, pageSize: PageSize}
}

func (f *fetcher) FetchAll(
	ctx context.Context,
	practice string,
	filter domain.RecordFilter,
) ([]domain.TimeRecord, error) {
	logger := zerolog.Ctx(ctx)

	var rows []store.TimeRecord
	for offset := 0; ; offset += f.pageSize {
		page, err := f.store.FetchPage(ctx, practice, filter, offset, f.pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch data: %w", err)
		}

		rows = append(rows, page...)
		if len(page) < f.pageSize {
			break
		}
	}

	logger.Debug().
		Str("practice", practice).
		Int("rows", len(rows)).
		Msg("record fetch complete")

	return adapters.MapStoreRecordsToDomain(rows), nil
}

func (f *fetcher) FetchWindows(
	ctx context.Context,
	practice string,
	filter domain.RecordFilter,
	current, prior domain.FiscalWindow,
) ([]domain.TimeRecord, []domain.TimeRecord, error) {
	var currentRows, priorRows []domain.TimeRecord

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := f.FetchAll(ctx, practice, filter.WithRange(current.Start, current.End))
		currentRows = rows
		return err
	})
	g.Go(func() error {
		rows, err := f.FetchAll(ctx, practice, filter.WithRange(prior.Start, prior.End))
		priorRows = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return currentRows, priorRows, nil
}
