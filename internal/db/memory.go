package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

type practiceKey struct {
	session  uuid.UUID
	question int
}

// MemoryStore keeps sessions in process memory. Values are stored as JSON so callers never share state.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID][]byte
	practice map[practiceKey][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID][]byte),
		practice: make(map[practiceKey][]byte),
	}
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}

// SaveSession inserts or replaces a session snapshot
func (m *MemoryStore) SaveSession(_ context.Context, state types.AppState) error {
	data, err := marshalState(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[state.ID] = data
	return nil
}

// GetSession retrieves a session snapshot by ID
func (m *MemoryStore) GetSession(_ context.Context, id uuid.UUID) (*types.AppState, error) {
	m.mu.RLock()
	data, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return unmarshalState(data)
}

// ListSessions returns the most recently updated sessions first
func (m *MemoryStore) ListSessions(_ context.Context, limit int) ([]types.SessionSummary, error) {
	m.mu.RLock()
	summaries := make([]types.SessionSummary, 0, len(m.sessions))
	for _, data := range m.sessions {
		state, err := unmarshalState(data)
		if err != nil {
			m.mu.RUnlock()
			return nil, err
		}
		summaries = append(summaries, Summarize(*state))
	}
	m.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	if n := normalizeLimit(limit); len(summaries) > n {
		summaries = summaries[:n]
	}
	return summaries, nil
}

// DeleteSession removes a session and its practice attempts
func (m *MemoryStore) DeleteSession(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	for key := range m.practice {
		if key.session == id {
			delete(m.practice, key)
		}
	}
	return nil
}

// SavePractice stores the latest attempt at a question, replacing any earlier one
func (m *MemoryStore) SavePractice(_ context.Context, sessionID uuid.UUID, practice types.PracticeSession) error {
	data, err := json.Marshal(practice)
	if err != nil {
		return fmt.Errorf("failed to marshal practice session: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	m.practice[practiceKey{session: sessionID, question: practice.QuestionID}] = data
	return nil
}

// GetPractice retrieves the latest attempt at a question
func (m *MemoryStore) GetPractice(_ context.Context, sessionID uuid.UUID, questionID int) (*types.PracticeSession, error) {
	m.mu.RLock()
	data, ok := m.practice[practiceKey{session: sessionID, question: questionID}]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return unmarshalPractice(data)
}
