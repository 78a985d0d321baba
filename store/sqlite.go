package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/use-agent/sitegrade/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	session_id    TEXT PRIMARY KEY,
	url           TEXT NOT NULL,
	overall_score INTEGER NOT NULL,
	category      TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	result        BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC);
`

// SQLiteStore persists results in a sqlite database. The full result is
// stored as a JSON document; scalar columns exist only for the listing.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and migrates) the database at path. ":memory:" keeps
// results in-process.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// modernc sqlite serializes writes itself; a single connection avoids
	// SQLITE_BUSY under concurrent jobs.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put stores a completed result, replacing any previous row for the session.
func (s *SQLiteStore) Put(ctx context.Context, result *models.AnalysisResult) error {
	doc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("store: marshal result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO analyses (session_id, url, overall_score, category, created_at, result)
		VALUES (?, ?, ?, ?, ?, ?)`,
		result.SessionID,
		result.URL,
		result.OverallScore,
		string(result.SchemaFaqAnalysis.CategoryLabel),
		result.CreatedAt.UTC().Format(time.RFC3339Nano),
		doc,
	)
	if err != nil {
		return fmt.Errorf("store: put %s: %w", result.SessionID, err)
	}
	return nil
}

// Get loads the result for a session id, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, sessionID string) (*models.AnalysisResult, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT result FROM analyses WHERE session_id = ?`, sessionID,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", sessionID, err)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(doc, &result); err != nil {
		return nil, fmt.Errorf("store: unmarshal %s: %w", sessionID, err)
	}
	return &result, nil
}

// List returns up to limit result summaries, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]models.ResultSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, url, overall_score, category, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	summaries := []models.ResultSummary{}
	for rows.Next() {
		var (
			summary   models.ResultSummary
			category  string
			createdAt string
		)
		if err := rows.Scan(&summary.SessionID, &summary.URL, &summary.OverallScore, &category, &createdAt); err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		summary.Category = models.Category(category)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			summary.CreatedAt = t
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Count returns the number of stored analyses.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
