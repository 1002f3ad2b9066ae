// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/search-collector/pkg/types"
)

// DefaultOutputPath is where a run is saved when no path is configured.
const DefaultOutputPath = "search-results.json"

// isYAML reports whether path names a YAML file by extension.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// WriteRun saves the run to path. Paths ending in .yaml or .yml are written
// as YAML; everything else is written as JSON indented by two spaces.
func WriteRun(path string, run *types.SearchRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid run: %w", err)
	}

	var data []byte
	if isYAML(path) {
		out, err := yaml.Marshal(run)
		if err != nil {
			return fmt.Errorf("marshaling run file: %w", err)
		}
		data = out
	} else {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(run); err != nil {
			return fmt.Errorf("marshaling run file: %w", err)
		}
		data = bytes.TrimRight(buf.Bytes(), "\n")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRun loads a run previously saved by WriteRun and checks its ranks.
func ReadRun(path string) (*types.SearchRun, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}

	var run types.SearchRun
	if isYAML(path) {
		err = yaml.Unmarshal(data, &run)
	} else {
		err = json.Unmarshal(data, &run)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	if err := run.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run file %s: %w", path, err)
	}
	return &run, nil
}
