// Package analytics wraps the ML analytics microservice that serves
// dosha, remedy and OPD-load figures for the specialty dashboards.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultBaseURL = "http://127.0.0.1:8000"

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

// OPDLoad fetches the current and projected outpatient load.
func (c *Client) OPDLoad(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/predict/opd-load")
}

// DoshaTrends fetches the aggregated dosha distribution.
func (c *Client) DoshaTrends(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/analyze/dosha-trends")
}

// RemedyTrends fetches remedy usage and effectiveness figures.
func (c *Client) RemedyTrends(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/analyze/remedy-trends")
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics service returned %d for %s", resp.StatusCode, path)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}
