//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Collect builds the CLI and runs a collection with the configured query,
// writing search-results.json in the working directory.
func Collect() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "collect")
}

// History lists runs recorded in the history database named by HISTORY_DB.
func History() error {
	mg.Deps(Build)
	return sh.RunWithV(map[string]string{"SEARCH_COLLECTOR_HISTORY_DB": envOr("HISTORY_DB", "history.db")},
		filepath.Join(binDir, binName), "history", "list")
}

// envOr returns the environment variable key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
