//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContent() (ParsedResume, GeneratedContent) {
	parsed := ParsedResume{
		Name:   "Jane Doe",
		Email:  "jane@x.com",
		Phone:  NotSpecified,
		Skills: []string{"React", "Node.js"},
		Roles:  []string{RolesNotParsed},
	}
	content := GeneratedContent{
		TailoredResume: TailoredResume{
			Name:     "Jane Doe",
			Skills:   []string{"React", "Node.js", "Python"},
			Keywords: []string{"Python"},
		},
		CoverLetter: "Dear Hiring Manager,",
		InterviewQuestions: []InterviewQuestion{
			{ID: 1, Question: "Tell me about yourself and your background.", Difficulty: DifficultyEasy, Category: "General"},
			{ID: 7, Question: "What's your approach to debugging complex issues?", Difficulty: DifficultyHard, Category: "Technical"},
		},
	}
	return parsed, content
}

func TestAppState_TransitionsDoNotMutateReceiver(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	base := NewAppState(uuid.New(), created)

	withResume := base.WithResume("resume.txt")
	assert.Empty(t, base.ResumeName)
	assert.Equal(t, "resume.txt", withResume.ResumeName)

	withJob := withResume.WithJobDescription("We are hiring")
	assert.Empty(t, withResume.JobDescription)
	assert.Equal(t, "We are hiring", withJob.JobDescription)

	parsed, content := sampleContent()
	later := created.Add(time.Minute)
	generated := withJob.WithGenerated(parsed, content, later)

	assert.False(t, withJob.Generated())
	assert.True(t, generated.Generated())
	assert.Equal(t, later, generated.UpdatedAt)
	assert.Equal(t, created, generated.CreatedAt)

	// Mutating the inputs after the transition must not leak into the snapshot
	parsed.Skills[0] = "Changed"
	content.TailoredResume.Skills[0] = "Changed"
	content.InterviewQuestions[0].Question = "Changed"
	assert.Equal(t, "React", generated.ParsedResume.Skills[0])
	assert.Equal(t, "React", generated.TailoredResume.Skills[0])
	assert.Equal(t, "Tell me about yourself and your background.", generated.InterviewQuestions[0].Question)
}

func TestAppState_Question(t *testing.T) {
	parsed, content := sampleContent()
	state := NewAppState(uuid.New(), time.Now()).WithGenerated(parsed, content, time.Now())

	q, ok := state.Question(7)
	require.True(t, ok)
	assert.Equal(t, DifficultyHard, q.Difficulty)

	_, ok = state.Question(42)
	assert.False(t, ok)
}

func TestAppState_ContentRoundTrip(t *testing.T) {
	parsed, content := sampleContent()
	state := NewAppState(uuid.New(), time.Now().UTC()).WithGenerated(parsed, content, time.Now().UTC())

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var decoded AppState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, state.ID, decoded.ID)
	assert.Equal(t, content, decoded.Content())
}

func TestBandForScore(t *testing.T) {
	tests := []struct {
		score int
		want  ScoreBand
	}{
		{10, BandStrong},
		{8, BandStrong},
		{7, BandFair},
		{6, BandFair},
		{5, BandWeak},
		{1, BandWeak},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandForScore(tt.score), "score %d", tt.score)
	}
	assert.Equal(t, BandFair, PracticeSession{Score: 6}.Band())
}

func TestParsedResume_HasParsedRoles(t *testing.T) {
	assert.False(t, ParsedResume{Roles: []string{RolesNotParsed}}.HasParsedRoles())
	assert.False(t, ParsedResume{}.HasParsedRoles())
	assert.True(t, ParsedResume{Roles: []string{"Engineer - Acme"}}.HasParsedRoles())
}

func TestDifficulty_Valid(t *testing.T) {
	assert.True(t, DifficultyEasy.Valid())
	assert.True(t, DifficultyHard.Valid())
	assert.False(t, Difficulty("Extreme").Valid())
}

func TestJobSignals_SourceNotSerialized(t *testing.T) {
	data, err := json.Marshal(JobSignals{Keywords: []string{"Go"}, Requirements: []string{}, Source: "raw text"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "raw text")
}
