// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists fetch runs to a local SQLite database with a
// full-text index over paper titles and company affiliations.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paperscope/pkg/types"
)

const dbFile = "paperscope.db"

// timeLayout is RFC 3339 with fixed-width nanoseconds, so the TEXT
// ordering of created_at is chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the archive SQLite database.
type Store struct {
	db         *sql.DB
	archiveDir string
	maxResults int
}

// NewStore opens or creates the archive database at
// archiveDir/paperscope.db, creating the schema if it does not exist.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(cfg.ArchiveDir, dbFile)
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
		archiveDir: cfg.ArchiveDir,
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
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			pubmed_id TEXT NOT NULL,
			title TEXT,
			pub_date TEXT,
			non_academic_authors TEXT,
			company_affiliations TEXT,
			corresponding_email TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_run_id ON papers(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, company_affiliations, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, company_affiliations)
				VALUES (new.rowid, new.title, new.company_affiliations);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, company_affiliations)
				VALUES('delete', old.rowid, old.title, old.company_affiliations);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, company_affiliations)
				VALUES('delete', old.rowid, old.title, old.company_affiliations);
				INSERT INTO papers_fts(rowid, title, company_affiliations)
				VALUES (new.rowid, new.title, new.company_affiliations);
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

// Run is one archived fetch: the query that produced it and when it ran.
type Run struct {
	ID         string    `json:"id" yaml:"id"`
	Query      string    `json:"query" yaml:"query"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	PaperCount int       `json:"paper_count" yaml:"paper_count"`
}

// SaveRun appends a run and its papers to the archive and returns the new
// run ID. Earlier runs are never modified; repeated fetches of the same
// paper produce separate rows under separate runs.
func (s *Store) SaveRun(ctx context.Context, query string, papers []types.Paper) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, query, created_at) VALUES (?, ?, ?)`,
		id, query, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (run_id, pubmed_id, title, pub_date,
			non_academic_authors, company_affiliations, corresponding_email)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range papers {
		_, err := stmt.ExecContext(ctx,
			id, p.PubmedID, p.Title, p.PubDate,
			p.NonAcademicAuthors, p.CompanyAffiliations, p.CorrespondingEmail,
		)
		if err != nil {
			return "", fmt.Errorf("inserting paper %s: %w", p.PubmedID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// Runs lists archived runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.query, r.created_at, COUNT(p.rowid)
		 FROM runs r
		 LEFT JOIN papers p ON p.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.created_at DESC, r.id`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			createdAt string
		)
		if err := rows.Scan(&run.ID, &run.Query, &createdAt, &run.PaperCount); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Papers returns the papers of one run in their original report order.
func (s *Store) Papers(ctx context.Context, runID string) ([]types.Paper, error) {
	var exists string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs WHERE id = ?`, runID,
	).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %s not found", runID)
		}
		return nil, fmt.Errorf("looking up run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT pubmed_id, title, pub_date, non_academic_authors,
			company_affiliations, corresponding_email
		 FROM papers WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []types.Paper
	for rows.Next() {
		var p types.Paper
		if err := rows.Scan(
			&p.PubmedID, &p.Title, &p.PubDate,
			&p.NonAcademicAuthors, &p.CompanyAffiliations, &p.CorrespondingEmail,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		papers = append(papers, p)
	}

	return papers, rows.Err()
}

// SearchHit is an archived paper with the run that produced it.
type SearchHit struct {
	types.Paper `yaml:",inline"`
	RunID       string `json:"run_id" yaml:"run_id"`
	RunQuery    string `json:"run_query" yaml:"run_query"`
}

// Search runs an FTS5 match over paper titles and company affiliations,
// ranked by relevance. A maxResults of zero uses the store default.
func (s *Store) Search(ctx context.Context, match string, maxResults int) ([]SearchHit, error) {
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.pubmed_id, p.title, p.pub_date, p.non_academic_authors,
			p.company_affiliations, p.corresponding_email, p.run_id, r.query
		 FROM papers_fts
		 JOIN papers p ON p.rowid = papers_fts.rowid
		 LEFT JOIN runs r ON p.run_id = r.id
		 WHERE papers_fts MATCH ?
		 ORDER BY papers_fts.rank
		 LIMIT ?`, match, maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var (
			hit      SearchHit
			runQuery sql.NullString
		)
		if err := rows.Scan(
			&hit.PubmedID, &hit.Title, &hit.PubDate,
			&hit.NonAcademicAuthors, &hit.CompanyAffiliations, &hit.CorrespondingEmail,
			&hit.RunID, &runQuery,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if runQuery.Valid {
			hit.RunQuery = runQuery.String
		}
		hits = append(hits, hit)
	}

	return hits, rows.Err()
}
