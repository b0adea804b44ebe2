package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id          TEXT PRIMARY KEY,
		resume_name TEXT NOT NULL DEFAULT '',
		state       TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sessions_updated_at_idx ON sessions (updated_at DESC)`,
	`CREATE TABLE IF NOT EXISTS practice_sessions (
		session_id  TEXT NOT NULL,
		question_id INTEGER NOT NULL,
		content     TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (session_id, question_id)
	)`,
}

// SQLite stores sessions in a local SQLite file
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (or creates) the database at path and creates missing tables
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // single writer

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: init schema: %w", err)
		}
	}
	return &SQLite{db: db}, nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveSession inserts or replaces a session snapshot
func (s *SQLite) SaveSession(ctx context.Context, state types.AppState) error {
	data, err := marshalState(state)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, resume_name, state, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET resume_name = excluded.resume_name, state = excluded.state, updated_at = excluded.updated_at`,
		state.ID.String(), state.ResumeName, string(data), formatTime(state.CreatedAt), formatTime(state.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save session %s: %w", state.ID, err)
	}
	return nil
}

// GetSession retrieves a session snapshot by ID
func (s *SQLite) GetSession(ctx context.Context, id uuid.UUID) (*types.AppState, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM sessions WHERE id = ?`, id.String()).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: get session %s: %w", id, err)
	}
	return unmarshalState([]byte(data))
}

// ListSessions returns the most recently updated sessions first
func (s *SQLite) ListSessions(ctx context.Context, limit int) ([]types.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT state FROM sessions ORDER BY updated_at DESC LIMIT ?`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := []types.SessionSummary{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("sqlite: scan session: %w", err)
		}
		state, err := unmarshalState([]byte(data))
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summarize(*state))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list sessions: %w", err)
	}
	return summaries, nil
}

// DeleteSession removes a session and its practice attempts
func (s *SQLite) DeleteSession(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("sqlite: delete session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM practice_sessions WHERE session_id = ?`, id.String()); err != nil {
		return fmt.Errorf("sqlite: delete practice for %s: %w", id, err)
	}
	return tx.Commit()
}

// SavePractice stores the latest attempt at a question, replacing any earlier one
func (s *SQLite) SavePractice(ctx context.Context, sessionID uuid.UUID, practice types.PracticeSession) error {
	data, err := json.Marshal(practice)
	if err != nil {
		return fmt.Errorf("sqlite: marshal practice session: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO practice_sessions (session_id, question_id, content, updated_at)
		 SELECT ?, ?, ?, ?
		 WHERE EXISTS (SELECT 1 FROM sessions WHERE id = ?)
		 ON CONFLICT(session_id, question_id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		sessionID.String(), practice.QuestionID, string(data), formatTime(time.Now()), sessionID.String(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save practice for question %d: %w", practice.QuestionID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// GetPractice retrieves the latest attempt at a question
func (s *SQLite) GetPractice(ctx context.Context, sessionID uuid.UUID, questionID int) (*types.PracticeSession, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM practice_sessions WHERE session_id = ? AND question_id = ?`,
		sessionID.String(), questionID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: get practice for question %d: %w", questionID, err)
	}
	return unmarshalPractice([]byte(data))
}

// formatTime uses a fixed-width UTC layout so stored timestamps sort lexically
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z")
}
