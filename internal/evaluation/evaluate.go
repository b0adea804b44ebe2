package evaluation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

// Tips offered in the suggested answer; one is chosen at random per evaluation
var Tips = []string{
	"Consider adding a specific example from your experience",
	"Include quantifiable results or metrics",
	"Structure your response with a clear beginning, middle, and end",
	"Connect your answer more directly to the role requirements",
}

// Rand picks a tip index in [0, n)
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Evaluator scores practice answers
type Evaluator struct {
	delay time.Duration
	rand  Rand
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithDelay adds a simulated processing delay before each evaluation
func WithDelay(d time.Duration) Option {
	return func(e *Evaluator) {
		e.delay = d
	}
}

// WithRand sets the source used to pick the improvement tip.
// The source must be safe for concurrent use if the Evaluator is shared.
func WithRand(r Rand) Option {
	return func(e *Evaluator) {
		if r != nil {
			e.rand = r
		}
	}
}

// New creates an Evaluator with no delay and the global random source
func New(opts ...Option) *Evaluator {
	e := &Evaluator{rand: globalRand{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Delay returns the configured simulated delay
func (e *Evaluator) Delay() time.Duration {
	return e.delay
}

// Evaluate scores an answer to a question against its model answer.
// The only error is ctx's, returned when ctx ends during the simulated delay.
func (e *Evaluator) Evaluate(ctx context.Context, question, answer, modelAnswer string) (types.Evaluation, error) {
	if e.delay > 0 {
		timer := time.NewTimer(e.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return types.Evaluation{}, ctx.Err()
		case <-timer.C:
		}
	}

	checks := Check(answer)
	return types.Evaluation{
		Score:           checks.Score(),
		Feedback:        checks.Feedback(),
		SuggestedAnswer: e.SuggestAnswer(question, answer, modelAnswer),
	}, nil
}

// SuggestAnswer prefixes the model answer with a randomly chosen improvement tip
func (e *Evaluator) SuggestAnswer(_, _, modelAnswer string) string {
	tip := Tips[e.rand.IntN(len(Tips))]
	return fmt.Sprintf("Here's how you could improve your answer: %s. %s", tip, modelAnswer)
}
