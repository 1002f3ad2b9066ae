// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search collects ranked results for a query by paging through a
// search backend one request at a time, and renders them for the console.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/search-collector/pkg/types"
)

const (
	// DefaultTargetCount is the number of results collected when none is given.
	DefaultTargetCount = 30

	// DefaultPageSize is the number of results requested per page.
	DefaultPageSize = 10

	// DefaultPageDelay is the pause between consecutive page requests.
	DefaultPageDelay = time.Second
)

// Pager fetches one page of results. google.Client implements it.
type Pager interface {
	FetchPage(ctx context.Context, pr types.PageRequest) ([]types.SearchItem, error)
}

// Collector pages through a Pager until it has TargetCount results or the
// backend runs dry. Requests are strictly sequential.
type Collector struct {
	Pager Pager

	// PageSize is the num sent with every request. Zero uses DefaultPageSize.
	PageSize int

	// Delay is slept between requests, never after the last one.
	Delay time.Duration

	// Sleep waits for d or until ctx is done. Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) error

	// Now stamps the run. Nil uses time.Now.
	Now func() time.Time

	// Out receives progress lines. Nil discards them.
	Out io.Writer
}

// NewCollector returns a Collector with the default page size and delay.
func NewCollector(p Pager, out io.Writer) *Collector {
	return &Collector{
		Pager:    p,
		PageSize: DefaultPageSize,
		Delay:    DefaultPageDelay,
		Out:      out,
	}
}

// Collect requests pages of PageSize starting at offset 1 and advancing by
// PageSize, at most ceil(targetCount/PageSize) times. It stops early when a
// page comes back empty. The returned run holds min(targetCount, available)
// results ranked from 1.
//
// A failed request aborts the whole run: results already fetched are
// discarded and the error is returned.
func (c *Collector) Collect(ctx context.Context, query, location string, targetCount int) (*types.SearchRun, error) {
	query = strings.TrimSpace(query)
	location = strings.TrimSpace(location)
	if query == "" {
		return nil, fmt.Errorf("query is empty")
	}
	if location == "" {
		return nil, fmt.Errorf("location is empty")
	}
	if targetCount < 0 {
		return nil, fmt.Errorf("target count must be positive, got %d", targetCount)
	}
	if targetCount == 0 {
		targetCount = DefaultTargetCount
	}
	if c.Pager == nil {
		return nil, fmt.Errorf("no search backend configured")
	}

	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	w := c.Out
	if w == nil {
		w = io.Discard
	}

	fmt.Fprintln(w, "Starting Google Search...")
	fmt.Fprintf(w, "Query: %q\n", query)
	fmt.Fprintf(w, "Location: %s\n", location)
	fmt.Fprintf(w, "Fetching %d results...\n\n", targetCount)

	combined := query + " " + location
	numRequests := (targetCount + pageSize - 1) / pageSize

	var all []types.SearchItem
	for i := 0; i < numRequests; i++ {
		start := i*pageSize + 1
		end := min(start+pageSize-1, targetCount)
		fmt.Fprintf(w, "Fetching results %d-%d...\n", start, end)

		items, err := c.Pager.FetchPage(ctx, types.PageRequest{Query: combined, Start: start, Num: pageSize})
		if err != nil {
			return nil, fmt.Errorf("fetching results %d-%d: %w", start, end, err)
		}
		if len(items) == 0 {
			fmt.Fprintf(w, "No more results available\n\n")
			break
		}
		all = append(all, items...)
		fmt.Fprintf(w, "Retrieved %d results\n\n", len(items))

		if i < numRequests-1 {
			if err := c.sleep(ctx); err != nil {
				return nil, err
			}
		}
	}

	if len(all) > targetCount {
		all = all[:targetCount]
	}
	slog.Debug("collection finished", "query", combined, "results", len(all), "target", targetCount)

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return types.NewSearchRun(query, location, now(), all), nil
}

func (c *Collector) sleep(ctx context.Context) error {
	if c.Delay <= 0 {
		return nil
	}
	if c.Sleep != nil {
		return c.Sleep(ctx, c.Delay)
	}
	t := time.NewTimer(c.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FormatRun writes the ranked results in the human-readable console layout.
func FormatRun(run *types.SearchRun, w io.Writer) {
	banner := strings.Repeat("═", 63)
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "SEARCH RESULTS (%d total)\n", run.TotalResults)
	fmt.Fprintln(w, banner)

	if len(run.Results) == 0 {
		fmt.Fprintln(w, "\nNo results found.")
		return
	}

	rule := "   " + strings.Repeat("─", 60)
	for _, r := range run.Results {
		fmt.Fprintf(w, "\n%d. %s\n", r.Rank, r.Title)
		fmt.Fprintf(w, "   URL: %s\n", r.URL)
		fmt.Fprintf(w, "   Snippet: %s\n", r.Snippet)
		fmt.Fprintln(w, rule)
	}
}

// FormatJSON writes the run as indented JSON to w.
func FormatJSON(run *types.SearchRun, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}
