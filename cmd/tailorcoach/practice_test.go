package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/db"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/evaluation"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

const strongAnswer = "In my last role I led a team of 4 engineers to migrate our React app to Vite, " +
	"which cut build times by 60% and improved page load by 2 seconds. I implemented shared components " +
	"and reviewed every pull request, and as a result we shipped the redesign two weeks early."

func TestPracticeCommand_Generated(t *testing.T) {
	stdout, _, err := execute(t, "practice",
		"--resume", sampleResumeFile(t),
		"--job", sampleJobFile(t),
		"--question", "1",
		"--answer", strongAnswer,
		"--json",
	)
	require.NoError(t, err)

	var got types.PracticeSession
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, 1, got.QuestionID)
	assert.Equal(t, strongAnswer, got.UserAnswer)
	assert.GreaterOrEqual(t, got.Score, 1)
	assert.LessOrEqual(t, got.Score, 10)
	assert.NotEmpty(t, got.SuggestedAnswer)
}

func TestPracticeCommand_Listing(t *testing.T) {
	answerFile := writeTemp(t, "answer.txt", strongAnswer)

	stdout, _, err := execute(t, "practice", "-q", "2", "--answer-file", answerFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Q2 [")
	assert.Contains(t, stdout, "ANSWER EVALUATION")
	assert.Contains(t, stdout, "Suggested answer:")
}

func TestPracticeCommand_StoredSession(t *testing.T) {
	ctx := context.Background()
	sqlitePath := filepath.Join(t.TempDir(), "history.db")

	_, _, err := execute(t, "generate", "--resume", sampleResumeFile(t), "--out", t.TempDir(), "--sqlite", sqlitePath)
	require.NoError(t, err)

	stdout, _, err := execute(t, "history", "--sqlite", sqlitePath, "--json")
	require.NoError(t, err)
	var sessions []types.SessionSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &sessions))
	require.Len(t, sessions, 1)
	id := sessions[0].ID

	_, _, err = execute(t, "practice", "--session", id.String(), "--sqlite", sqlitePath, "--question", "3", "--answer", "short answer")
	require.NoError(t, err)
	_, _, err = execute(t, "practice", "--session", id.String(), "--sqlite", sqlitePath, "--question", "3", "--answer", strongAnswer)
	require.NoError(t, err)

	store, err := db.OpenSQLite(ctx, sqlitePath)
	require.NoError(t, err)
	defer store.Close()

	attempt, err := store.GetPractice(ctx, id, 3)
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.Equal(t, strongAnswer, attempt.UserAnswer, "latest attempt replaces the earlier one")
}

func TestPracticeCommand_Errors(t *testing.T) {
	sqlitePath := filepath.Join(t.TempDir(), "history.db")

	t.Run("blank answer", func(t *testing.T) {
		_, _, err := execute(t, "practice", "--question", "1", "--answer", "   ")
		assert.ErrorIs(t, err, evaluation.ErrEmptyAnswer)
	})
	t.Run("unknown question", func(t *testing.T) {
		_, _, err := execute(t, "practice", "--question", "99", "--answer", strongAnswer)
		assert.ErrorIs(t, err, evaluation.ErrQuestionNotFound)
	})
	t.Run("unknown session", func(t *testing.T) {
		_, _, err := execute(t, "practice", "--session", "7f0c4a52-3c1e-4e8a-9d1b-2f5a6b7c8d9e", "--sqlite", sqlitePath, "--question", "1", "--answer", strongAnswer)
		assert.ErrorIs(t, err, db.ErrSessionNotFound)
	})

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing question",
			args:    []string{"practice", "--answer", strongAnswer},
			wantErr: `required flag(s) "question" not set`,
		},
		{
			name:    "session without store",
			args:    []string{"practice", "--session", "7f0c4a52-3c1e-4e8a-9d1b-2f5a6b7c8d9e", "--question", "1", "--answer", strongAnswer},
			wantErr: "--session requires --sqlite or --db-url",
		},
		{
			name:    "invalid session id",
			args:    []string{"practice", "--session", "nope", "--sqlite", sqlitePath, "--question", "1", "--answer", strongAnswer},
			wantErr: "invalid session id",
		},
		{
			name:    "answer and answer file",
			args:    []string{"practice", "--question", "1", "--answer", strongAnswer, "--answer-file", "answer.txt"},
			wantErr: "if any flags in the group [answer answer-file] are set none of the others can be",
		},
		{
			name:    "missing answer file",
			args:    []string{"practice", "--question", "1", "--answer-file", filepath.Join(t.TempDir(), "missing.txt")},
			wantErr: "failed to read answer file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
