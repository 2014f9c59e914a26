package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
)

func TestFetchPage(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/practices/acme/records", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		// one numeric and one string amount, the way the endpoint mixes them
		fmt.Fprint(w, `[
			{"id":"r1","date":"2024-07-05","staff":"Alice","timeValue":130,"amount":120.5,"billable":true},
			{"id":"r2","date":"2024-07-06","staff":"Bob","amount":"88.20"},
			{"id":"r3","date":"2024-07-07","staff":"Cleo","amount":null}
		]`)
	}))
	defer srv.Close()

	s := NewStore(Config{BaseURL: srv.URL, Token: "tok"})

	from := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	filter := domain.RecordFilter{
		Fields: []domain.FieldMatch{{Field: domain.FieldStaff, Value: "Alice"}},
		Flags:  []domain.FlagMatch{{Flag: domain.FlagCapacityReducing, Value: false}},
	}.WithRange(from, to)

	rows, err := s.FetchPage(context.Background(), "acme", filter, 1000, 1000)

	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "120.5", rows[0].Amount)
	require.NotNil(t, rows[0].TimeValue)
	assert.Equal(t, 130.0, *rows[0].TimeValue)
	assert.Equal(t, "88.20", rows[1].Amount)
	assert.Empty(t, rows[2].Amount)
	assert.Equal(t, "acme", rows[0].Practice)

	assert.Equal(t, "1000", gotQuery["offset"])
	assert.Equal(t, "1000", gotQuery["limit"])
	assert.Equal(t, "2024-07-01", gotQuery["from"])
	assert.Equal(t, "2025-06-30", gotQuery["to"])
	assert.Equal(t, "Alice", gotQuery["staff"])
	assert.Equal(t, "false", gotQuery["capacityReducing"])
}

func TestFetchPage_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewStore(Config{BaseURL: srv.URL})
	_, err := s.FetchPage(context.Background(), "acme", domain.RecordFilter{}, 0, 1000)

	require.Error(t, err)
	assert.ErrorContains(t, err, "429")
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestFetchPage_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"not":"an array"}`)
	}))
	defer srv.Close()

	s := NewStore(Config{BaseURL: srv.URL})
	_, err := s.FetchPage(context.Background(), "acme", domain.RecordFilter{}, 0, 1000)

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to decode record page")
}
