// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists PitchRecords in a SQLite database with full-text
// search over company names and founders.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pitch-engine/pkg/types"
)

const (
	recordsDir = "records"
	indexDir   = "index"
	dbFile     = "pitch.db"
)

// Store manages the deck database.
type Store struct {
	db         *sql.DB
	decksDir   string
	maxResults int
}

// NewStore opens or creates the deck database at decksDir/index/pitch.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DecksDir, indexDir)
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

	s := &Store{
		db:         db,
		decksDir:   cfg.DecksDir,
		maxResults: maxResults,
	}

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
		`CREATE TABLE IF NOT EXISTS decks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			deck_id TEXT NOT NULL UNIQUE,
			company_name TEXT NOT NULL,
			funding_sought TEXT,
			valuation REAL,
			founders TEXT,
			market_size_billions REAL,
			status TEXT NOT NULL,
			pdf_path TEXT,
			scanned_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decks_status ON decks(status)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			deck_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='decks_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE decks_fts USING fts5(company_name, founders, content=decks, content_rowid=rowid)`,
			`CREATE TRIGGER decks_ai AFTER INSERT ON decks BEGIN
				INSERT INTO decks_fts(rowid, company_name, founders) VALUES (new.rowid, new.company_name, new.founders);
			END`,
			`CREATE TRIGGER decks_ad AFTER DELETE ON decks BEGIN
				INSERT INTO decks_fts(decks_fts, rowid, company_name, founders) VALUES('delete', old.rowid, old.company_name, old.founders);
			END`,
			`CREATE TRIGGER decks_au AFTER UPDATE ON decks BEGIN
				INSERT INTO decks_fts(decks_fts, rowid, company_name, founders) VALUES('delete', old.rowid, old.company_name, old.founders);
				INSERT INTO decks_fts(rowid, company_name, founders) VALUES (new.rowid, new.company_name, new.founders);
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

// IngestSummary holds counts from an indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of records processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads record YAML files from decksDir/records/ and populates the
// database. Unchanged files are skipped on subsequent runs; changed files
// replace the previous row. On success it refreshes export.yaml.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	recDir := filepath.Join(s.decksDir, recordsDir)

	entries, err := os.ReadDir(recDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading records directory %s: %w", recDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		deckID := strings.TrimSuffix(entry.Name(), ".yaml")
		filePath := filepath.Join(recDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", deckID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE deck_id = ?`, deckID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", deckID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", deckID, err)
			summary.Failed++
			continue
		}

		var rec types.PitchRecord
		if err := yaml.Unmarshal(data, &rec); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", deckID, err)
			summary.Failed++
			continue
		}
		if rec.DeckID == "" {
			rec.DeckID = deckID
		}

		if err := s.ingestRecord(ctx, &rec, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", deckID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%s)\n", deckID, rec.CompanyName)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%s)\n", deckID, rec.CompanyName)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestRecord(ctx context.Context, rec *types.PitchRecord, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Delete-then-insert so the FTS triggers stay in sync on updates.
	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM decks WHERE deck_id = ?`, rec.DeckID); err != nil {
			return fmt.Errorf("deleting old record: %w", err)
		}
	}

	fundingJSON, _ := json.Marshal(rec.FundingSought)
	foundersJSON, _ := json.Marshal(rec.Founders)
	scannedAt := ""
	if !rec.ScannedAt.IsZero() {
		scannedAt = rec.ScannedAt.UTC().Format(time.RFC3339Nano)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO decks (deck_id, company_name, funding_sought, valuation, founders, market_size_billions, status, pdf_path, scanned_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.DeckID, rec.CompanyName, string(fundingJSON), rec.Valuation,
		string(foundersJSON), rec.MarketSizeBillions, string(rec.Status),
		rec.PDFPath, scannedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting record %s: %w", rec.DeckID, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (deck_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(deck_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		rec.DeckID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// QueryOptions holds parameters for deck queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string, matched against company
	// names and founders.
	Query string

	// Status filters by scan status.
	Status types.ScanStatus

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Status == ""
}

// Retrieve queries the deck database with optional full-text search and a
// status filter. Full-text queries are ranked by relevance; structured
// queries are sorted by company name.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.PitchRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT d.deck_id, d.company_name, d.funding_sought, d.valuation,
				d.founders, d.market_size_billions, d.status, d.pdf_path, d.scanned_at
			FROM decks_fts
			JOIN decks d ON d.rowid = decks_fts.rowid
			WHERE decks_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT d.deck_id, d.company_name, d.funding_sought, d.valuation,
				d.founders, d.market_size_billions, d.status, d.pdf_path, d.scanned_at
			FROM decks d
			WHERE 1=1`)
	}

	if opts.Status != "" {
		qb.WriteString(` AND d.status = ?`)
		args = append(args, string(opts.Status))
	}

	if useFTS {
		qb.WriteString(` ORDER BY decks_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY d.company_name, d.deck_id`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying deck database: %w", err)
	}
	defer rows.Close()

	var results []types.PitchRecord
	for rows.Next() {
		var (
			rec          types.PitchRecord
			fundingJSON  sql.NullString
			foundersJSON sql.NullString
			valuation    sql.NullFloat64
			marketSize   sql.NullFloat64
			status       string
			scannedAt    string
		)

		if err := rows.Scan(
			&rec.DeckID, &rec.CompanyName, &fundingJSON, &valuation,
			&foundersJSON, &marketSize, &status, &rec.PDFPath, &scannedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		rec.Status = types.ScanStatus(status)

		if fundingJSON.Valid {
			json.Unmarshal([]byte(fundingJSON.String), &rec.FundingSought)
		}
		if foundersJSON.Valid {
			json.Unmarshal([]byte(foundersJSON.String), &rec.Founders)
		}
		if valuation.Valid {
			v := valuation.Float64
			rec.Valuation = &v
		}
		if marketSize.Valid {
			m := marketSize.Float64
			rec.MarketSizeBillions = &m
		}
		if scannedAt != "" {
			if ts, err := time.Parse(time.RFC3339Nano, scannedAt); err == nil {
				rec.ScannedAt = ts
			}
		}

		results = append(results, rec)
	}

	return results, rows.Err()
}
