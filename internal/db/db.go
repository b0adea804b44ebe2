package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id          UUID PRIMARY KEY,
		resume_name TEXT NOT NULL DEFAULT '',
		state       JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sessions_updated_at_idx ON sessions (updated_at DESC)`,
	`CREATE TABLE IF NOT EXISTS practice_sessions (
		session_id  UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		question_id INTEGER NOT NULL,
		content     JSONB NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (session_id, question_id)
	)`,
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ Store = (*DB)(nil)

// Connect establishes a connection pool to the database and creates missing tables
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the session tables if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Close closes the connection pool
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

// SaveSession inserts or replaces a session snapshot
func (db *DB) SaveSession(ctx context.Context, state types.AppState) error {
	data, err := marshalState(state)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO sessions (id, resume_name, state, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET resume_name = $2, state = $3, updated_at = $5`,
		state.ID, state.ResumeName, data, state.CreatedAt, state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", state.ID, err)
	}
	return nil
}

// GetSession retrieves a session snapshot by ID
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*types.AppState, error) {
	var data []byte
	err := db.pool.QueryRow(ctx, `SELECT state FROM sessions WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}
	return unmarshalState(data)
}

// ListSessions returns the most recently updated sessions first
func (db *DB) ListSessions(ctx context.Context, limit int) ([]types.SessionSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT state FROM sessions ORDER BY updated_at DESC LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	summaries := []types.SessionSummary{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		state, err := unmarshalState(data)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summarize(*state))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return summaries, nil
}

// DeleteSession removes a session and its practice attempts
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// SavePractice stores the latest attempt at a question, replacing any earlier one
func (db *DB) SavePractice(ctx context.Context, sessionID uuid.UUID, practice types.PracticeSession) error {
	data, err := json.Marshal(practice)
	if err != nil {
		return fmt.Errorf("failed to marshal practice session: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`INSERT INTO practice_sessions (session_id, question_id, content)
		 SELECT $1::uuid, $2::integer, $3::jsonb
		 WHERE EXISTS (SELECT 1 FROM sessions WHERE id = $1::uuid)
		 ON CONFLICT (session_id, question_id) DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()`,
		sessionID, practice.QuestionID, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save practice for question %d: %w", practice.QuestionID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// GetPractice retrieves the latest attempt at a question
func (db *DB) GetPractice(ctx context.Context, sessionID uuid.UUID, questionID int) (*types.PracticeSession, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM practice_sessions WHERE session_id = $1 AND question_id = $2`,
		sessionID, questionID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get practice for question %d: %w", questionID, err)
	}
	return unmarshalPractice(data)
}
