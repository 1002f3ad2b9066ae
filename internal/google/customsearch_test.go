// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package google

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/search-collector/internal/httputil"
	"github.com/pdiddy/search-collector/pkg/types"
)

const sampleResponseJSON = `{
  "kind": "customsearch#search",
  "searchInformation": {"searchTime": 0.31, "totalResults": "1230000"},
  "items": [
    {
      "kind": "customsearch#result",
      "title": "Top Interior Design Firms in Hong Kong",
      "link": "https://example.hk/firms",
      "displayLink": "example.hk",
      "snippet": "A curated list of interior design companies."
    },
    {
      "kind": "customsearch#result",
      "title": "Studio Lau | Residential Interiors",
      "link": "https://studiolau.example.com/",
      "displayLink": "studiolau.example.com",
      "snippet": "Residential and commercial projects across Kowloon."
    }
  ]
}`

// withServer points customSearchBase at a test server for the duration of t.
func withServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	old := customSearchBase
	customSearchBase = ts.URL
	t.Cleanup(func() { customSearchBase = old })
	return ts
}

func testClient(ts *httptest.Server) *Client {
	return &Client{
		HTTPClient: ts.Client(),
		APIKey:     "test-key",
		EngineID:   "test-cx",
		Country:    "hk",
		Restrict:   "countryHK",
		UserAgent:  "search-collector/test",
	}
}

func TestFetchPage_ParsesItems(t *testing.T) {
	ts := withServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleResponseJSON)
	})

	items, err := testClient(ts).FetchPage(context.Background(), types.PageRequest{Query: "Interior Design Company Hong Kong", Start: 1, Num: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, types.SearchItem{
		Title:       "Top Interior Design Firms in Hong Kong",
		Link:        "https://example.hk/firms",
		Snippet:     "A curated list of interior design companies.",
		DisplayLink: "example.hk",
	}, items[0])
	assert.Equal(t, "studiolau.example.com", items[1].DisplayLink)
}

func TestFetchPage_SendsParameters(t *testing.T) {
	var got url.Values
	var ua string
	ts := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		ua = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"items": []}`)
	})

	_, err := testClient(ts).FetchPage(context.Background(), types.PageRequest{Query: "Interior Design Company Hong Kong", Start: 21, Num: 10})
	require.NoError(t, err)

	assert.Equal(t, "test-key", got.Get("key"))
	assert.Equal(t, "test-cx", got.Get("cx"))
	assert.Equal(t, "Interior Design Company Hong Kong", got.Get("q"))
	assert.Equal(t, "21", got.Get("start"))
	assert.Equal(t, "10", got.Get("num"))
	assert.Equal(t, "hk", got.Get("gl"))
	assert.Equal(t, "countryHK", got.Get("cr"))
	assert.Equal(t, "search-collector/test", ua)
}

func TestFetchPage_NoItemsField(t *testing.T) {
	ts := withServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"kind": "customsearch#search", "searchInformation": {"totalResults": "0"}}`)
	})

	items, err := testClient(ts).FetchPage(context.Background(), types.PageRequest{Query: "q", Start: 91, Num: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchPage_StatusError(t *testing.T) {
	ts := withServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"code": 400, "message": "API key not valid. Please pass a valid API key.", "status": "INVALID_ARGUMENT"}}`)
	})

	_, err := testClient(ts).FetchPage(context.Background(), types.PageRequest{Query: "q", Start: 1, Num: 10})
	require.Error(t, err)

	se, ok := httputil.AsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "API key not valid. Please pass a valid API key.", se.Message)
}

func TestFetchPage_MalformedJSON(t *testing.T) {
	ts := withServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"items": [`)
	})

	_, err := testClient(ts).FetchPage(context.Background(), types.PageRequest{Query: "q", Start: 1, Num: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing custom search response")
}

func TestFetchPage_InvalidRequest(t *testing.T) {
	c := &Client{}
	tests := []struct {
		name string
		pr   types.PageRequest
		want string
	}{
		{"zero start", types.PageRequest{Query: "q", Start: 0, Num: 10}, "start must be"},
		{"zero num", types.PageRequest{Query: "q", Start: 1, Num: 0}, "num must be"},
		{"num above max", types.PageRequest{Query: "q", Start: 1, Num: 11}, "num must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.FetchPage(context.Background(), tt.pr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFetchPage_ContextCancelled(t *testing.T) {
	ts := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testClient(ts).FetchPage(ctx, types.PageRequest{Query: "q", Start: 1, Num: 10})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient(t *testing.T) {
	cfg := types.CollectConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "ua/1"},
		Google: types.GoogleConfig{
			APIKey:         "k",
			SearchEngineID: "cx",
			Country:        "hk",
			Restrict:       "countryHK",
		},
	}
	c := NewClient(cfg)
	assert.Equal(t, 5*time.Second, c.HTTPClient.Timeout)
	assert.Equal(t, "k", c.APIKey)
	assert.Equal(t, "cx", c.EngineID)
	assert.Equal(t, "hk", c.Country)
	assert.Equal(t, "countryHK", c.Restrict)
	assert.Equal(t, "ua/1", c.UserAgent)
}
