// Package store persists analysis sessions to SQLite so past crawls can be
// listed and re-rendered without re-crawling. Persistence is optional: the
// analyzer core never requires it.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"seolens/models"
)

const DefaultDBName = "seolens.db"

type Store struct {
	*sql.DB
	path string
}

// Open opens or creates the SQLite database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{DB: sqlDB, path: path}
	if err := s.ensureSchemaExists(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) ensureSchemaExists() error {
	var tableName string
	err := s.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='sessions'").Scan(&tableName)
	if err == sql.ErrNoRows {
		return s.InitSchema()
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// InitSchema creates the tables.
func (s *Store) InitSchema() error {
	_, err := s.Exec(schema)
	return err
}

// Session is one persisted analysis run.
type Session struct {
	SessionID int64
	CreatedAt time.Time
	Domain    string
	StartURL  string
	PageCount int
	AvgScore  float64
	MinScore  float64
	MaxScore  float64
}

// SaveSession persists a digest and returns the new session ID. Signals and
// scores are stored as JSON per page; the digest is fully reconstructable.
func (s *Store) SaveSession(startURL string, digest *models.AnalysisDigest) (int64, error) {
	stats := digest.Stats()
	summaryJSON, err := json.Marshal(digest.Summary)
	if err != nil {
		return 0, fmt.Errorf("failed to encode summary: %w", err)
	}

	tx, err := s.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO sessions (domain, start_url, page_count, avg_score, min_score, max_score, summary_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, digest.Domain, startURL, len(digest.Pages), stats.Avg, stats.Min, stats.Max, string(summaryJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}
	sessionID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get session ID: %w", err)
	}

	for _, page := range digest.Pages {
		signalsJSON, err := json.Marshal(page.Signals)
		if err != nil {
			return 0, fmt.Errorf("failed to encode signals for %s: %w", page.Signals.URL, err)
		}
		scoreJSON, err := json.Marshal(page.Score)
		if err != nil {
			return 0, fmt.Errorf("failed to encode score for %s: %w", page.Signals.URL, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO pages (session_id, url, comprehensive_score, signals_json, score_json)
			VALUES (?, ?, ?, ?, ?)
		`, sessionID, page.Signals.URL, page.Score.ComprehensiveScore, string(signalsJSON), string(scoreJSON)); err != nil {
			return 0, fmt.Errorf("failed to insert page %s: %w", page.Signals.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit session: %w", err)
	}
	return sessionID, nil
}

// ListSessions returns sessions most recent first.
func (s *Store) ListSessions(limit int) ([]Session, error) {
	query := `
		SELECT session_id, created_at, domain, start_url, page_count, avg_score, min_score, max_score
		FROM sessions
		ORDER BY created_at DESC, session_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.SessionID, &sess.CreatedAt, &sess.Domain, &sess.StartURL,
			&sess.PageCount, &sess.AvgScore, &sess.MinScore, &sess.MaxScore); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// GetSession reconstructs the digest of one persisted session.
func (s *Store) GetSession(sessionID int64) (*Session, *models.AnalysisDigest, error) {
	var sess Session
	var summaryJSON string
	err := s.QueryRow(`
		SELECT session_id, created_at, domain, start_url, page_count, avg_score, min_score, max_score, summary_json
		FROM sessions
		WHERE session_id = ?
	`, sessionID).Scan(&sess.SessionID, &sess.CreatedAt, &sess.Domain, &sess.StartURL,
		&sess.PageCount, &sess.AvgScore, &sess.MinScore, &sess.MaxScore, &summaryJSON)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("session %d not found", sessionID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}

	digest := &models.AnalysisDigest{Domain: sess.Domain}
	if err := json.Unmarshal([]byte(summaryJSON), &digest.Summary); err != nil {
		return nil, nil, fmt.Errorf("failed to decode summary: %w", err)
	}

	rows, err := s.Query(`
		SELECT signals_json, score_json
		FROM pages
		WHERE session_id = ?
		ORDER BY page_id
	`, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session pages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var signalsJSON, scoreJSON string
		if err := rows.Scan(&signalsJSON, &scoreJSON); err != nil {
			return nil, nil, fmt.Errorf("failed to scan page: %w", err)
		}
		var page models.PageAnalysis
		if err := json.Unmarshal([]byte(signalsJSON), &page.Signals); err != nil {
			return nil, nil, fmt.Errorf("failed to decode signals: %w", err)
		}
		if err := json.Unmarshal([]byte(scoreJSON), &page.Score); err != nil {
			return nil, nil, fmt.Errorf("failed to decode score: %w", err)
		}
		digest.Pages = append(digest.Pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return &sess, digest, nil
}
