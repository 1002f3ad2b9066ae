package main

import (
	"log/slog"

	"github.com/spf13/viper"

	"github.com/pdiddy/search-collector/internal/search"
	"github.com/pdiddy/search-collector/internal/secrets"
	"github.com/pdiddy/search-collector/pkg/types"
)

// Placeholders used when no credential is configured anywhere. Requests made
// with them fail with HTTP 400, which prints the credential tips.
const (
	placeholderAPIKey   = "YOUR_API_KEY_HERE"
	placeholderEngineID = "YOUR_SEARCH_ENGINE_ID_HERE"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("google.country", "hk")
	v.SetDefault("google.restrict", "countryHK")
	v.SetDefault("search.query", "Interior Design Company")
	v.SetDefault("search.location", "Hong Kong")
	v.SetDefault("search.target_count", search.DefaultTargetCount)
	v.SetDefault("search.delay", search.DefaultPageDelay)
	v.SetDefault("output.path", search.DefaultOutputPath)
	v.SetDefault("http.timeout", 0)
	v.SetDefault("http.user_agent", "search-collector/"+version)
	v.SetDefault("log.level", "warn")
}

// loadCollectConfig resolves a CollectConfig from v. Credentials fall back to
// the secrets map and then to placeholder strings.
func loadCollectConfig(v *viper.Viper, sec map[string]string) types.CollectConfig {
	cfg := types.CollectConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   v.GetDuration("http.timeout"),
			UserAgent: v.GetString("http.user_agent"),
		},
		Google: types.GoogleConfig{
			APIKey:         credential(v.GetString("google.api_key"), sec[secrets.GoogleAPIKey], placeholderAPIKey),
			SearchEngineID: credential(v.GetString("google.search_engine_id"), sec[secrets.GoogleSearchEngineID], placeholderEngineID),
			Country:        v.GetString("google.country"),
			Restrict:       v.GetString("google.restrict"),
		},
		Query:       v.GetString("search.query"),
		Location:    v.GetString("search.location"),
		TargetCount: v.GetInt("search.target_count"),
		PageDelay:   v.GetDuration("search.delay"),
		OutputPath:  v.GetString("output.path"),
		HistoryDB:   v.GetString("history.db"),
	}

	if cfg.Google.APIKey == placeholderAPIKey {
		slog.Warn("no API key configured; set GOOGLE_API_KEY")
	}
	if cfg.Google.SearchEngineID == placeholderEngineID {
		slog.Warn("no search engine ID configured; set GOOGLE_SEARCH_ENGINE_ID")
	}
	return cfg
}

// credential returns the first non-empty value.
func credential(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
