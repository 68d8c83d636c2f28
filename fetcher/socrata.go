// fetcher/socrata.go
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/propwatch/violationwatch/config"
	"github.com/propwatch/violationwatch/models"
)

// Client fetches property records from NYC Open Data (Socrata) endpoints.
// One Client serves all four sources; everything source-specific comes from
// the models.SourceSpec passed to FetchSource.
type Client struct {
	baseURL     string
	appToken    string
	recordLimit int
	http        *http.Client
}

// New builds a client from the nyc_data configuration block.
func New(cfg config.NYCDataConfig) *Client {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	limit := cfg.RecordLimit
	if limit <= 0 {
		limit = 1000
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		appToken:    cfg.AppToken,
		recordLimit: limit,
		http:        &http.Client{Timeout: timeout},
	}
}

// RecordLimit returns the per-call record cap.
func (c *Client) RecordLimit() int {
	return c.recordLimit
}

// FetchSource retrieves records for one source: records concerning the
// subject whose source date field is after sinceDate, newest first, capped at
// the configured limit. Any failure yields an error and no records; the
// caller decides that a single source's failure must not abort the cycle.
func (c *Client) FetchSource(ctx context.Context, spec models.SourceSpec, subject models.Subject, sinceDate string) ([]models.RawViolation, error) {
	endpoint := fmt.Sprintf("%s/%s.json", c.baseURL, spec.Dataset)

	params := url.Values{}
	params.Set("$where", spec.Where(subject, sinceDate))
	params.Set("$order", spec.DateField+" DESC")
	params.Set("$limit", fmt.Sprintf("%d", c.recordLimit))
	if c.appToken != "" {
		params.Set("$$app_token", c.appToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", spec.Dataset, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", spec.Dataset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("failed to fetch %s: status code %d: %s", spec.Dataset, resp.StatusCode, string(body))
	}

	var records []models.RawViolation
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", spec.Dataset, err)
	}

	// $limit already bounds the response; truncate anyway so a misbehaving
	// endpoint cannot exceed the per-cycle cap.
	if len(records) > c.recordLimit {
		records = records[:c.recordLimit]
	}
	return records, nil
}
