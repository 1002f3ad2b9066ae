package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the search API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the client default (none).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "search-collector/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GoogleConfig holds Custom Search JSON API credentials and locale settings.
type GoogleConfig struct {
	// APIKey is the Google Cloud API key with Custom Search enabled.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// SearchEngineID is the Programmable Search Engine identifier (cx).
	SearchEngineID string `json:"search_engine_id,omitempty" yaml:"search_engine_id,omitempty"`

	// Country is the gl parameter, the geolocation of the end user (default "hk").
	Country string `json:"country" yaml:"country"`

	// Restrict is the cr parameter restricting results to a country (default "countryHK").
	Restrict string `json:"restrict" yaml:"restrict"`
}

// CollectConfig holds settings for one collection run.
type CollectConfig struct {
	HTTPConfig `yaml:",inline"`
	Google     GoogleConfig `json:"google" yaml:"google"`

	// Query is the search phrase; Location is appended to it.
	Query    string `json:"query" yaml:"query"`
	Location string `json:"location" yaml:"location"`

	// TargetCount is the maximum number of results to collect (default 30).
	TargetCount int `json:"target_count" yaml:"target_count"`

	// PageDelay is the pause between page requests (default 1s).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`

	// OutputPath is where the run is saved (default "search-results.json").
	OutputPath string `json:"output_path" yaml:"output_path"`

	// HistoryDB is the SQLite run-history path. Empty disables history.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`
}
