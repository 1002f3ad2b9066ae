// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records completed search runs in a SQLite database so
// earlier collections can be listed and re-rendered without re-querying.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/search-collector/pkg/types"
)

const defaultListLimit = 20

// ErrNotFound is returned by Get when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// Summary describes a recorded run without its results.
type Summary struct {
	ID         string `json:"id" yaml:"id"`
	Query      string `json:"query" yaml:"query"`
	Location   string `json:"location" yaml:"location"`
	Timestamp  string `json:"timestamp" yaml:"timestamp"`
	Total      int    `json:"total" yaml:"total"`
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// Open opens or creates the history database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			query TEXT NOT NULL,
			location TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			total INTEGER NOT NULL,
			output_path TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			rank INTEGER NOT NULL,
			title TEXT,
			url TEXT,
			snippet TEXT,
			display_link TEXT,
			PRIMARY KEY (run_id, rank)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_query ON runs(query)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run and its ranked results in one transaction and returns
// the generated run ID.
func (s *Store) Record(ctx context.Context, run *types.SearchRun, outputPath string) (string, error) {
	if err := run.Validate(); err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}

	id := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, query, location, timestamp, total, output_path) VALUES (?, ?, ?, ?, ?, ?)`,
		id, run.Query, run.Location, run.Timestamp, run.TotalResults, outputPath,
	); err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, rank, title, url, snippet, display_link) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing result insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range run.Results {
		if _, err := stmt.ExecContext(ctx, id, r.Rank, r.Title, r.URL, r.Snippet, r.DisplayLink); err != nil {
			return "", fmt.Errorf("inserting result %d: %w", r.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// List returns the most recently recorded runs first. A limit of zero or
// less uses the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, location, timestamp, total, COALESCE(output_path, '')
		 FROM runs ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Query, &sm.Location, &sm.Timestamp, &sm.Total, &sm.OutputPath); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Get loads a recorded run with its results in rank order.
func (s *Store) Get(ctx context.Context, id string) (*types.SearchRun, error) {
	run := &types.SearchRun{}
	err := s.db.QueryRowContext(ctx,
		`SELECT query, location, timestamp, total FROM runs WHERE id = ?`, id,
	).Scan(&run.Query, &run.Location, &run.Timestamp, &run.TotalResults)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT rank, COALESCE(title, ''), COALESCE(url, ''), COALESCE(snippet, ''), COALESCE(display_link, '')
		 FROM results WHERE run_id = ? ORDER BY rank`, id)
	if err != nil {
		return nil, fmt.Errorf("loading results for %s: %w", id, err)
	}
	defer rows.Close()

	run.Results = []types.RankedItem{}
	for rows.Next() {
		var r types.RankedItem
		if err := rows.Scan(&r.Rank, &r.Title, &r.URL, &r.Snippet, &r.DisplayLink); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		run.Results = append(run.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return run, nil
}
