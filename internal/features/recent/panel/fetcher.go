package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"faq-studio/internal/core"
)

// PageSize is the fixed number of records a load asks for
const PageSize = 100

// Fetcher reads the record page and the total count from the questions backend
type Fetcher struct {
	baseURL string
	client  *http.Client
	logger  *core.Logger
}

// NewFetcher creates a fetcher for the backend at baseURL. A nil client uses
// http.DefaultClient; no timeout is imposed beyond the caller's context.
func NewFetcher(baseURL string, client *http.Client, logger *core.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// Load issues the record page and total count requests concurrently and waits
// for both. A failed record page fails the load; a failed count only leaves
// the total unknown.
func (f *Fetcher) Load(ctx context.Context) (*ViewModel, error) {
	var (
		records []Record
		total   *int64
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		records, err = f.fetchRecords(ctx)
		return err
	})
	g.Go(func() error {
		total = f.fetchTotal(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ViewModel{Records: records, Total: total}, nil
}

func (f *Fetcher) fetchRecords(ctx context.Context) ([]Record, error) {
	url := fmt.Sprintf("%s/questions?limit=%d&offset=0", f.baseURL, PageSize)

	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ParseError{URL: url, Err: errors.New("expected a JSON array")}
	}

	var records []Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}
	if records == nil {
		records = []Record{}
	}

	return records, nil
}

func (f *Fetcher) fetchTotal(ctx context.Context) *int64 {
	url := f.baseURL + "/stats/total"

	body, err := f.get(ctx, url)
	if err != nil {
		f.logger.Warn("Total count unavailable", "url", url, "error", err)
		return nil
	}

	var payload struct {
		Total *int64 `json:"total"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		f.logger.Warn("Total count unreadable", "url", url, "error", err)
		return nil
	}

	return payload.Total
}

// Categories reads the known category labels for the category select
func (f *Fetcher) Categories(ctx context.Context) ([]string, error) {
	url := f.baseURL + "/categories.json"

	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}

	return categories, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Method: http.MethodGet, URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
