package types

import "fmt"

// Difficulty grades an interview question
type Difficulty string

// Difficulty levels
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is one of the known difficulty levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// InterviewQuestion is a practice question paired with a model answer
type InterviewQuestion struct {
	ID          int        `json:"id"`
	Question    string     `json:"question"`
	Difficulty  Difficulty `json:"difficulty"`
	Category    string     `json:"category"`
	ModelAnswer string     `json:"model_answer"`
}

// Evaluation is the scored feedback for a single practice answer
type Evaluation struct {
	Score           int      `json:"score"`
	Feedback        []string `json:"feedback"`
	SuggestedAnswer string   `json:"suggested_answer"`
}

// PracticeSession records the most recent attempt at one question
type PracticeSession struct {
	QuestionID      int      `json:"question_id"`
	UserAnswer      string   `json:"user_answer"`
	Score           int      `json:"score"`
	Feedback        []string `json:"feedback"`
	SuggestedAnswer string   `json:"suggested_answer"`
}

// NewPracticeSession builds a practice record from an evaluation
func NewPracticeSession(questionID int, answer string, eval Evaluation) PracticeSession {
	return PracticeSession{
		QuestionID:      questionID,
		UserAnswer:      answer,
		Score:           eval.Score,
		Feedback:        eval.Feedback,
		SuggestedAnswer: eval.SuggestedAnswer,
	}
}

// Band returns the display band for the session's score
func (p PracticeSession) Band() ScoreBand {
	return BandForScore(p.Score)
}

// ScoreBand groups scores for display
type ScoreBand string

// Score bands
const (
	BandStrong ScoreBand = "strong"
	BandFair   ScoreBand = "fair"
	BandWeak   ScoreBand = "weak"
)

// BandForScore maps a 1-10 score to its band: 8 and up is strong, 6 and 7 are fair
func BandForScore(score int) ScoreBand {
	switch {
	case score >= 8:
		return BandStrong
	case score >= 6:
		return BandFair
	default:
		return BandWeak
	}
}

// String implements fmt.Stringer
func (q InterviewQuestion) String() string {
	return fmt.Sprintf("Q%d [%s/%s] %s", q.ID, q.Difficulty, q.Category, q.Question)
}
