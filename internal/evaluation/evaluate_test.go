package evaluation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

const sixtyWordAnswer = "I implemented a caching layer that cut latency by 30%. "

func longAnswer() string {
	return strings.Repeat(sixtyWordAnswer, 6)
}

func TestEvaluate_StrongAnswerScoresTen(t *testing.T) {
	e := New(WithRand(fixedRand(0)))
	answer := longAnswer()
	require.Equal(t, 60, len(strings.Fields(answer)))

	eval, err := e.Evaluate(context.Background(), "Walk me through a challenging project you worked on.", answer, "Model answer.")

	require.NoError(t, err)
	assert.Equal(t, 10, eval.Score)
	assert.Empty(t, eval.Feedback)
}

func TestEvaluate_EmptyAnswer(t *testing.T) {
	e := New(WithRand(fixedRand(1)))

	eval, err := e.Evaluate(context.Background(), "Q", "", "Model answer.")

	require.NoError(t, err)
	assert.Equal(t, 5, eval.Score)
	assert.Equal(t, []string{
		"Provide more detailed examples and explanations",
		"Include specific examples from your experience",
		"Add quantifiable results or metrics when possible",
		"Expand your answer with more context and details",
	}, eval.Feedback)
	assert.Equal(t, "Here's how you could improve your answer: Include quantifiable results or metrics. Model answer.", eval.SuggestedAnswer)
}

func TestChecks_ScoreAndFeedback(t *testing.T) {
	tests := []struct {
		name         string
		answer       string
		wantScore    int
		wantFeedback []string
	}{
		{
			name:         "short vague answer",
			answer:       "I did it",
			wantScore:    5,
			wantFeedback: []string{FeedbackMoreDetail, FeedbackSpecificExample, FeedbackQuantify, FeedbackExpand},
		},
		{
			name:         "example and metric",
			answer:       "My project increased revenue",
			wantScore:    8,
			wantFeedback: []string{FeedbackMoreDetail, FeedbackExpand},
		},
		{
			name:         "case-insensitive triggers",
			answer:       "EXPERIENCE shows PERCENT gains",
			wantScore:    8,
			wantFeedback: []string{FeedbackMoreDetail, FeedbackExpand},
		},
		{
			name:         "digits count as quantified",
			answer:       "Handled 3 releases",
			wantScore:    6,
			wantFeedback: []string{FeedbackMoreDetail, FeedbackSpecificExample, FeedbackExpand},
		},
		{
			name:         "whitespace only",
			answer:       "   \n\t ",
			wantScore:    5,
			wantFeedback: []string{FeedbackMoreDetail, FeedbackSpecificExample, FeedbackQuantify, FeedbackExpand},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := Check(tt.answer)
			assert.Equal(t, tt.wantScore, checks.Score())
			assert.Equal(t, tt.wantFeedback, checks.Feedback())
		})
	}
}

func TestChecks_LengthBonusBoundaries(t *testing.T) {
	tests := []struct {
		length int
		bonus  bool
	}{
		{200, false},
		{201, true},
		{799, true},
		{800, false},
	}

	for _, tt := range tests {
		answer := strings.Repeat("a", tt.length)
		checks := Check(answer)
		want := baseScore
		if tt.bonus {
			want++
		}
		assert.Equal(t, want, checks.Score(), "length %d", tt.length)
	}
}

func TestChecks_WordCount(t *testing.T) {
	assert.Equal(t, 1, Check("").WordCount)
	assert.Equal(t, 1, Check("word").WordCount)
	assert.Equal(t, 3, Check("  three  separate\nwords ").WordCount)
}

func TestChecks_ScoreAlwaysInRange(t *testing.T) {
	answers := []string{"", "x", longAnswer(), strings.Repeat("experience 100% improved ", 200)}
	for _, a := range answers {
		score := Check(a).Score()
		assert.GreaterOrEqual(t, score, 1)
		assert.LessOrEqual(t, score, 10)
	}
}

func TestSuggestAnswer_UsesEveryTip(t *testing.T) {
	for i, tip := range Tips {
		e := New(WithRand(fixedRand(i)))
		got := e.SuggestAnswer("Q", "A", "Model.")
		assert.Equal(t, "Here's how you could improve your answer: "+tip+". Model.", got)
	}
}

func TestSuggestAnswer_DefaultRandPicksKnownTip(t *testing.T) {
	e := New()
	got := e.SuggestAnswer("Q", "A", "Model.")

	matched := false
	for _, tip := range Tips {
		if got == "Here's how you could improve your answer: "+tip+". Model." {
			matched = true
		}
	}
	assert.True(t, matched, "unexpected suggestion %q", got)
}

func TestEvaluate_DelayHonorsContext(t *testing.T) {
	e := New(WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Evaluate(ctx, "Q", "A", "M")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluate_ShortDelayCompletes(t *testing.T) {
	e := New(WithDelay(5*time.Millisecond), WithRand(fixedRand(0)))
	assert.Equal(t, 5*time.Millisecond, e.Delay())

	start := time.Now()
	eval, err := e.Evaluate(context.Background(), "Q", "I did it", "M")

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
	assert.Equal(t, 5, eval.Score)
}

func TestPractice(t *testing.T) {
	state := types.AppState{
		InterviewQuestions: []types.InterviewQuestion{
			{ID: 1, Question: "Tell me about yourself and your background.", ModelAnswer: "I'm a Go professional."},
		},
	}
	e := New(WithRand(fixedRand(2)))

	session, err := e.Practice(context.Background(), state, 1, longAnswer())
	require.NoError(t, err)
	assert.Equal(t, 1, session.QuestionID)
	assert.Equal(t, 10, session.Score)
	assert.Equal(t, types.BandStrong, session.Band())
	assert.Equal(t, "Here's how you could improve your answer: Structure your response with a clear beginning, middle, and end. I'm a Go professional.", session.SuggestedAnswer)

	_, err = e.Practice(context.Background(), state, 4, "answer")
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = e.Practice(context.Background(), state, 1, "  ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	_, err = e.Practice(context.Background(), types.AppState{}, 1, "answer")
	assert.ErrorIs(t, err, ErrNotGenerated)
}
