// Package db persists session snapshots and practice attempts.
// Three backends share the Store interface: PostgreSQL for the server,
// SQLite for local CLI history, and an in-memory store for tests and ephemeral runs.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

// DefaultListLimit caps ListSessions when no limit is given
const DefaultListLimit = 20

// ErrSessionNotFound is returned by writes that target a session that does not exist
var ErrSessionNotFound = errors.New("session not found")

// Store persists AppState snapshots and the latest practice attempt per question.
// Reads of a missing record return nil, nil.
type Store interface {
	SaveSession(ctx context.Context, state types.AppState) error
	GetSession(ctx context.Context, id uuid.UUID) (*types.AppState, error)
	ListSessions(ctx context.Context, limit int) ([]types.SessionSummary, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	SavePractice(ctx context.Context, sessionID uuid.UUID, practice types.PracticeSession) error
	GetPractice(ctx context.Context, sessionID uuid.UUID, questionID int) (*types.PracticeSession, error)
	Close() error
}

// Summarize builds the listing entry for a snapshot
func Summarize(state types.AppState) types.SessionSummary {
	summary := types.SessionSummary{
		ID:         state.ID,
		ResumeName: state.ResumeName,
		CreatedAt:  state.CreatedAt,
		UpdatedAt:  state.UpdatedAt,
	}
	if state.ParsedResume != nil && state.ParsedResume.Name != types.NotSpecified {
		summary.Name = state.ParsedResume.Name
	}
	return summary
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

func marshalState(state types.AppState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session %s: %w", state.ID, err)
	}
	return data, nil
}

func unmarshalState(data []byte) (*types.AppState, error) {
	var state types.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &state, nil
}

func unmarshalPractice(data []byte) (*types.PracticeSession, error) {
	var practice types.PracticeSession
	if err := json.Unmarshal(data, &practice); err != nil {
		return nil, fmt.Errorf("failed to unmarshal practice session: %w", err)
	}
	return &practice, nil
}
