package records

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/models/store"
)

// pagedStore serves a fixed sequence of page sizes and records each call.
type pagedStore struct {
	pages   []int
	err     error
	errPage int
	calls   []int // offsets seen
}

func (s *pagedStore) FetchPage(
	_ context.Context,
	_ string,
	_ domain.RecordFilter,
	offset, limit int,
) ([]store.TimeRecord, error) {
	page := len(s.calls)
	s.calls = append(s.calls, offset)

	if s.err != nil && page == s.errPage {
		return nil, s.err
	}
	if page >= len(s.pages) {
		return nil, nil
	}

	rows := make([]store.TimeRecord, s.pages[page])
	for i := range rows {
		rows[i] = store.TimeRecord{Date: "2024-07-05", Amount: "1"}
	}
	return rows, nil
}

func TestFetchAll_PagesUntilShortPage(t *testing.T) {
	s := &pagedStore{pages: []int{1000, 1000, 400}}
	f := NewFetcher(s)

	rows, err := f.FetchAll(context.Background(), "acme", domain.RecordFilter{})

	require.NoError(t, err)
	assert.Len(t, rows, 2400)
	assert.Equal(t, []int{0, 1000, 2000}, s.calls)
}

func TestFetchAll_StopsOnEmptyPage(t *testing.T) {
	s := &pagedStore{pages: []int{1000, 0}}
	f := NewFetcher(s)

	rows, err := f.FetchAll(context.Background(), "acme", domain.RecordFilter{})

	require.NoError(t, err)
	assert.Len(t, rows, 1000)
	assert.Equal(t, []int{0, 1000}, s.calls)
}

func TestFetchAll_SinglePartialPage(t *testing.T) {
	s := &pagedStore{pages: []int{3}}
	f := NewFetcher(s)

	rows, err := f.FetchAll(context.Background(), "acme", domain.RecordFilter{})

	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, []int{0}, s.calls)
}

func TestFetchAll_PageErrorAborts(t *testing.T) {
	s := &pagedStore{pages: []int{1000, 1000}, err: fmt.Errorf("upstream gone"), errPage: 1}
	f := NewFetcher(s)

	rows, err := f.FetchAll(context.Background(), "acme", domain.RecordFilter{})

	require.Error(t, err)
	assert.Nil(t, rows)
	assert.ErrorContains(t, err, "failed to fetch data")
	assert.ErrorContains(t, err, "upstream gone")
}

func TestFetchWindows_JoinsBothPeriods(t *testing.T) {
	s := &windowStore{}
	f := NewFetcher(s)

	current := domain.FiscalWindow{
		Start: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
	prior := domain.FiscalWindow{
		Start: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
	}

	cur, pri, err := f.FetchWindows(context.Background(), "acme", domain.RecordFilter{}, current, prior)

	require.NoError(t, err)
	assert.Len(t, cur, 2)
	assert.Len(t, pri, 1)
}

func TestFetchWindows_ErrorFromEitherFetchPropagates(t *testing.T) {
	s := &windowStore{failPrior: true}
	f := NewFetcher(s)

	current := domain.FiscalWindow{
		Start: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
	prior := domain.FiscalWindow{
		Start: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
	}

	_, _, err := f.FetchWindows(context.Background(), "acme", domain.RecordFilter{}, current, prior)

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to fetch data")
}

// windowStore answers by date range: two rows for the 2024 window, one for 2023.
type windowStore struct {
	failPrior bool
}

func (s *windowStore) FetchPage(
	_ context.Context,
	_ string,
	filter domain.RecordFilter,
	_, _ int,
) ([]store.TimeRecord, error) {
	if filter.From == nil {
		return nil, fmt.Errorf("expected a date range")
	}
	if filter.From.Year() == 2023 {
		if s.failPrior {
			return nil, fmt.Errorf("prior fetch failed")
		}
		return []store.TimeRecord{{Date: "2023-08-01", Amount: "10"}}, nil
	}
	return []store.TimeRecord{
		{Date: "2024-08-01", Amount: "20"},
		{Date: "2024-09-01", Amount: "30"},
	}, nil
}
