// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package google queries the Google Custom Search JSON API one page at a time.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/search-collector/internal/httputil"
	"github.com/pdiddy/search-collector/pkg/types"
)

// customSearchBase is the Custom Search JSON API endpoint. Declared as a
// var so tests can substitute an httptest server.
var customSearchBase = "https://www.googleapis.com/customsearch/v1"

// MaxPageSize is the largest num the API accepts per request.
const MaxPageSize = 10

// Client fetches pages from the Custom Search API.
type Client struct {
	HTTPClient *http.Client
	APIKey     string
	EngineID   string
	// Country and Restrict are sent as gl and cr.
	Country   string
	Restrict  string
	UserAgent string
}

// NewClient builds a Client from configuration. A zero timeout keeps the
// default http.Client behaviour.
func NewClient(cfg types.CollectConfig) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		APIKey:     cfg.Google.APIKey,
		EngineID:   cfg.Google.SearchEngineID,
		Country:    cfg.Google.Country,
		Restrict:   cfg.Google.Restrict,
		UserAgent:  cfg.UserAgent,
	}
}

// FetchPage requests a single page. An empty, non-nil-error result means the
// API has no more items for the query.
func (c *Client) FetchPage(ctx context.Context, pr types.PageRequest) ([]types.SearchItem, error) {
	if pr.Start < 1 {
		return nil, fmt.Errorf("start must be >= 1, got %d", pr.Start)
	}
	if pr.Num < 1 || pr.Num > MaxPageSize {
		return nil, fmt.Errorf("num must be between 1 and %d, got %d", MaxPageSize, pr.Num)
	}

	params := url.Values{
		"key":   {c.APIKey},
		"cx":    {c.EngineID},
		"q":     {pr.Query},
		"start": {strconv.Itoa(pr.Start)},
		"num":   {strconv.Itoa(pr.Num)},
	}
	if c.Country != "" {
		params.Set("gl", c.Country)
	}
	if c.Restrict != "" {
		params.Set("cr", c.Restrict)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, customSearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	slog.Debug("custom search request", "start", pr.Start, "num", pr.Num, "q", pr.Query)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("custom search request: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckResponse(resp); err != nil {
		return nil, err
	}

	var csr customSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&csr); err != nil {
		return nil, fmt.Errorf("parsing custom search response: %w", err)
	}

	items := make([]types.SearchItem, 0, len(csr.Items))
	for _, it := range csr.Items {
		items = append(items, types.SearchItem{
			Title:       it.Title,
			Link:        it.Link,
			Snippet:     it.Snippet,
			DisplayLink: it.DisplayLink,
		})
	}
	slog.Debug("custom search response", "start", pr.Start, "items", len(items),
		"total", csr.SearchInformation.TotalResults)
	return items, nil
}

// Custom Search API JSON structures.
type customSearchResponse struct {
	SearchInformation customSearchInfo   `json:"searchInformation"`
	Items             []customSearchItem `json:"items"`
}

type customSearchInfo struct {
	// TotalResults is a decimal string in the API response.
	TotalResults string  `json:"totalResults"`
	SearchTime   float64 `json:"searchTime"`
}

type customSearchItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
}
