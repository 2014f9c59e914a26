package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/models/store"
	recordstore "github.com/de-tools/practice-atlas/pkg/store/records"
)

// Config points the store at a hosted record table endpoint. The endpoint
// caps one response at its own page size, which is why callers page.
type Config struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

type restStore struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewStore(cfg Config) recordstore.Store {
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &restStore{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		client:  client,
	}
}

// pageRow is the wire form of one record. The amount is kept raw because the
// endpoint returns it as a number for synced rows and a string for imported
// ones.
type pageRow struct {
	ID             string          `json:"id"`
	Date           string          `json:"date"`
	Staff          string          `json:"staff"`
	AccountManager string          `json:"accountManager"`
	JobManager     string          `json:"jobManager"`
	ClientGroup    string          `json:"clientGroup"`
	TimeValue      *float64        `json:"timeValue"`
	Amount         json.RawMessage `json:"amount"`
	Billable       bool            `json:"billable"`
	CapacityRed    bool            `json:"capacityReducing"`
	Billed         bool            `json:"billed"`
}

func (s *restStore) FetchPage(
	ctx context.Context,
	practice string,
	filter domain.RecordFilter,
	offset, limit int,
) ([]store.TimeRecord, error) {
	endpoint := fmt.Sprintf("%s/practices/%s/records", s.baseURL, url.PathEscape(practice))

	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))
	if filter.From != nil {
		params.Set("from", filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		params.Set("to", filter.To.Format("2006-01-02"))
	}
	for _, m := range filter.Fields {
		params.Set(string(m.Field), m.Value)
	}
	for _, m := range filter.Flags {
		params.Set(string(m.Flag), strconv.FormatBool(m.Value))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build record page request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("record page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("record page request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page []pageRow
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode record page: %w", err)
	}

	records := make([]store.TimeRecord, 0, len(page))
	for _, row := range page {
		records = append(records, store.TimeRecord{
			ID:             row.ID,
			Practice:       practice,
			Date:           row.Date,
			Staff:          row.Staff,
			AccountManager: row.AccountManager,
			JobManager:     row.JobManager,
			ClientGroup:    row.ClientGroup,
			TimeValue:      row.TimeValue,
			Amount:         rawAmount(row.Amount),
			Billable:       row.Billable,
			CapacityRed:    row.CapacityRed,
			Billed:         row.Billed,
		})
	}
	return records, nil
}

func rawAmount(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "null" {
		return ""
	}
	return s
}
