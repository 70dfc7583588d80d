// Package ledger persists a crawl's results to a local SQLite database
// alongside the in-memory report the printer consumes. It is grounded
// on benjojo-gophervista's crawl queue schema (an "assets" table keyed
// by path with a type and a timestamp), repurposed here as a
// write-once report sink rather than a work queue: nothing read back
// out of the ledger ever feeds a new selector into a traversal, so it
// does not implement resumable or incremental crawling.
package ledger

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// Ledger wraps the SQLite database backing a crawl's durable report.
type Ledger struct {
	db *sql.DB
}

// Open creates (if absent) and opens the SQLite database at path,
// ensuring its schema exists.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ledger: ping %s: %w", path, err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return l, nil
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resources (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			host TEXT NOT NULL,
			port INTEGER NOT NULL,
			selector TEXT NOT NULL,
			full_path TEXT NOT NULL,
			local_path TEXT NOT NULL,
			kind TEXT NOT NULL,
			size INTEGER NOT NULL,
			recorded_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_resources_full_path ON resources(full_path);`,
		`CREATE TABLE IF NOT EXISTS crawl_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			origin_host TEXT NOT NULL,
			origin_port INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			visited INTEGER NOT NULL,
			text_files INTEGER NOT NULL,
			bad_text_files INTEGER NOT NULL,
			binary_files INTEGER NOT NULL,
			bad_binary_files INTEGER NOT NULL,
			external_up INTEGER NOT NULL,
			external_down INTEGER NOT NULL,
			invalid_references INTEGER NOT NULL,
			smallest_text_size INTEGER NOT NULL,
			largest_text_size INTEGER NOT NULL,
			smallest_binary_size INTEGER NOT NULL,
			largest_binary_size INTEGER NOT NULL
		);`,
	}

	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("ledger: create schema: %w", err)
		}
	}
	return nil
}

// ResourceRecord is one persisted file's metadata, recorded in the
// same traversal order the indexer appends to its in-memory lists.
type ResourceRecord struct {
	Host       string
	Port       int
	Selector   string
	FullPath   string
	LocalPath  string
	Kind       string // "text" or "binary"
	Size       int64
	RecordedAt int64
}

// RecordResource inserts one row per successfully persisted file. A
// failure here is logged and does not abort the crawl: the ledger
// mirrors the in-memory StatsState, it never gates correctness.
func (l *Ledger) RecordResource(r ResourceRecord) error {
	_, err := l.db.Exec(
		`INSERT INTO resources (host, port, selector, full_path, local_path, kind, size, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Host, r.Port, r.Selector, r.FullPath, r.LocalPath, r.Kind, r.Size, r.RecordedAt,
	)
	if err != nil {
		log.Printf("ledger: failed to record resource %s: %s", r.FullPath, err)
		return err
	}
	return nil
}

// RunSummary captures the StatsState totals for one completed crawl.
type RunSummary struct {
	OriginHost string
	OriginPort int
	StartedAt  int64
	FinishedAt int64

	Visited            int
	TextFiles          int
	BadTextFiles       int
	BinaryFiles        int
	BadBinaryFiles     int
	ExternalUp         int
	ExternalDown       int
	InvalidReferences  int
	SmallestTextSize   int64
	LargestTextSize    int64
	SmallestBinarySize int64
	LargestBinarySize  int64
}

// RecordRun inserts one summary row for the whole crawl, after Crawl
// has returned.
func (l *Ledger) RecordRun(s RunSummary) error {
	_, err := l.db.Exec(
		`INSERT INTO crawl_runs (
			origin_host, origin_port, started_at, finished_at,
			visited, text_files, bad_text_files, binary_files, bad_binary_files,
			external_up, external_down, invalid_references,
			smallest_text_size, largest_text_size, smallest_binary_size, largest_binary_size
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.OriginHost, s.OriginPort, s.StartedAt, s.FinishedAt,
		s.Visited, s.TextFiles, s.BadTextFiles, s.BinaryFiles, s.BadBinaryFiles,
		s.ExternalUp, s.ExternalDown, s.InvalidReferences,
		s.SmallestTextSize, s.LargestTextSize, s.SmallestBinarySize, s.LargestBinarySize,
	)
	if err != nil {
		log.Printf("ledger: failed to record run summary: %s", err)
		return err
	}
	return nil
}

// Close closes the underlying database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}
