// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists composed records in a SQLite database with an
// FTS5 full-text index, so the corpus can be searched while it is being
// proofread. The catalog is derived data; the record TOML files remain
// the source of truth.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mwhitmore/catechism-press/internal/classify"
	"github.com/mwhitmore/catechism-press/internal/source"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "catechism.db"
)

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the catalog database at
// catalogDir/index/catechism.db, creating the schema if needed.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.CatalogDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			prompt TEXT NOT NULL,
			answer TEXT NOT NULL,
			verses TEXT,
			shape TEXT NOT NULL,
			fragment_count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_shape ON records(shape)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE records_fts USING fts5(prompt, answer, content=records, content_rowid=rowid)`,
			`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, prompt, answer) VALUES (new.rowid, new.prompt, new.answer);
			END`,
			`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, prompt, answer) VALUES('delete', old.rowid, old.prompt, old.answer);
			END`,
			`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, prompt, answer) VALUES('delete', old.rowid, old.prompt, old.answer);
				INSERT INTO records_fts(rowid, prompt, answer) VALUES (new.rowid, new.prompt, new.answer);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a catalog indexing run.
type IngestSummary struct {
	Indexed int
	Failed  int
}

// Ingest loads all records from sourceDir and upserts them into the
// catalog. The answer text indexed is the plain concatenation of fragment
// texts; LaTeX markup never enters the index. Classification runs with
// cfg so searches can filter by answer shape.
func (s *Store) Ingest(ctx context.Context, sourceDir string, cfg types.ClassifierConfig, w io.Writer) (IngestSummary, error) {
	records, err := source.LoadRecords(sourceDir, w)
	if err != nil {
		return IngestSummary{}, err
	}

	var summary IngestSummary
	for _, rec := range records {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if err := s.upsert(ctx, rec, cfg); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", rec.ID, err)
			summary.Failed++
			continue
		}
		summary.Indexed++
	}

	fmt.Fprintf(w, "\nindexed: %d, failed: %d\n", summary.Indexed, summary.Failed)
	return summary, nil
}

func (s *Store) upsert(ctx context.Context, rec types.Record, cfg types.ClassifierConfig) error {
	var answer, verses []string
	for _, f := range rec.Fragments {
		if f.Text != "" {
			answer = append(answer, f.Text)
		}
		if f.Verses != "" {
			verses = append(verses, f.Verses)
		}
	}
	shape := classify.Classify(rec.Fragments, cfg).String()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (id, prompt, answer, verses, shape, fragment_count)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			prompt = excluded.prompt,
			answer = excluded.answer,
			verses = excluded.verses,
			shape = excluded.shape,
			fragment_count = excluded.fragment_count`,
		rec.ID, rec.Prompt, strings.Join(answer, " "), strings.Join(verses, "; "),
		shape, len(rec.Fragments))
	if err != nil {
		return fmt.Errorf("upserting record %s: %w", rec.ID, err)
	}
	return nil
}
