// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the search-collector CLI.
// A SearchItem is what the remote search API returns for one hit; a
// SearchRun is the ranked, timestamped aggregate that is printed, saved to
// disk, and optionally recorded in the run history.
package types

import (
	"fmt"
	"time"
)

// TimestampFormat is the ISO-8601 layout used for SearchRun.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// SearchItem is a single hit returned by the remote search service.
type SearchItem struct {
	Title       string `json:"title" yaml:"title"`
	Link        string `json:"link" yaml:"link"`
	Snippet     string `json:"snippet" yaml:"snippet"`
	DisplayLink string `json:"displayLink" yaml:"displayLink"`
}

// RankedItem is a SearchItem with its 1-based position in the run.
type RankedItem struct {
	Rank        int    `json:"rank" yaml:"rank"`
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Snippet     string `json:"snippet" yaml:"snippet"`
	DisplayLink string `json:"displayLink" yaml:"displayLink"`
}

// SearchRun is the result of one collection: the query that produced it,
// when it ran, and the ranked results in the order the service returned them.
type SearchRun struct {
	Query        string       `json:"query" yaml:"query"`
	Location     string       `json:"location" yaml:"location"`
	Timestamp    string       `json:"timestamp" yaml:"timestamp"`
	TotalResults int          `json:"totalResults" yaml:"totalResults"`
	Results      []RankedItem `json:"results" yaml:"results"`
}

// NewSearchRun ranks items in order starting at 1 and stamps the run with now (UTC).
func NewSearchRun(query, location string, now time.Time, items []SearchItem) *SearchRun {
	results := make([]RankedItem, len(items))
	for i, it := range items {
		results[i] = RankedItem{
			Rank:        i + 1,
			Title:       it.Title,
			URL:         it.Link,
			Snippet:     it.Snippet,
			DisplayLink: it.DisplayLink,
		}
	}
	return &SearchRun{
		Query:        query,
		Location:     location,
		Timestamp:    now.UTC().Format(TimestampFormat),
		TotalResults: len(results),
		Results:      results,
	}
}

// Validate checks that ranks run 1..n and that TotalResults matches.
func (r *SearchRun) Validate() error {
	if r.TotalResults != len(r.Results) {
		return fmt.Errorf("totalResults is %d but %d results are present", r.TotalResults, len(r.Results))
	}
	for i, item := range r.Results {
		if item.Rank != i+1 {
			return fmt.Errorf("result %d has rank %d, want %d", i, item.Rank, i+1)
		}
	}
	return nil
}

// PageRequest identifies one page of results from the search service.
type PageRequest struct {
	// Query is the full query string, location already appended.
	Query string
	// Start is the 1-based index of the first result on the page.
	Start int
	// Num is the number of results requested.
	Num int
}
