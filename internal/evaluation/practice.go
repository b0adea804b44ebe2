package evaluation

import (
	"context"
	"errors"
	"strings"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

var (
	// ErrEmptyAnswer is returned when a practice answer is blank
	ErrEmptyAnswer = errors.New("answer must not be empty")
	// ErrQuestionNotFound is returned when the question id is not part of the session
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNotGenerated is returned when practicing on a session without generated questions
	ErrNotGenerated = errors.New("no interview questions have been generated")
)

// Practice evaluates an answer to one of the session's generated questions
func (e *Evaluator) Practice(ctx context.Context, state types.AppState, questionID int, answer string) (types.PracticeSession, error) {
	if len(state.InterviewQuestions) == 0 {
		return types.PracticeSession{}, ErrNotGenerated
	}
	if strings.TrimSpace(answer) == "" {
		return types.PracticeSession{}, ErrEmptyAnswer
	}
	q, ok := state.Question(questionID)
	if !ok {
		return types.PracticeSession{}, ErrQuestionNotFound
	}

	eval, err := e.Evaluate(ctx, q.Question, answer, q.ModelAnswer)
	if err != nil {
		return types.PracticeSession{}, err
	}
	return types.NewPracticeSession(q.ID, answer, eval), nil
}
