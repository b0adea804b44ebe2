// Package evaluation scores practice interview answers with simple content heuristics.
package evaluation

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

const (
	baseScore = 5
	minScore  = 1
	maxScore  = 10

	// detailedWordCount earns the length bonus; briefWordCount triggers the detail feedback
	detailedWordCount = 50
	briefWordCount    = 30

	// answers strictly inside (minFocusedLength, maxFocusedLength) characters earn the focus bonus
	minFocusedLength = 200
	maxFocusedLength = 800
	shortLength      = 100
)

// Feedback lines, emitted in this order
const (
	FeedbackMoreDetail      = "Provide more detailed examples and explanations"
	FeedbackSpecificExample = "Include specific examples from your experience"
	FeedbackQuantify        = "Add quantifiable results or metrics when possible"
	FeedbackExpand          = "Expand your answer with more context and details"
)

var (
	examplePattern    = regexp.MustCompile(`(?i)example|experience|project|implemented|developed|achieved`)
	quantifiedPattern = regexp.MustCompile(`(?i)\d+|%|percent|increased|reduced|improved`)
)

// AnswerChecks holds the heuristic signals found in an answer
type AnswerChecks struct {
	WordCount           int
	Length              int
	HasSpecificExample  bool
	HasQuantifiedImpact bool
}

// Check computes the heuristic signals for an answer
func Check(answer string) AnswerChecks {
	return AnswerChecks{
		WordCount:           wordCount(answer),
		Length:              len(utf16.Encode([]rune(answer))),
		HasSpecificExample:  examplePattern.MatchString(answer),
		HasQuantifiedImpact: quantifiedPattern.MatchString(answer),
	}
}

// Score returns the 1-10 score for the checks
func (c AnswerChecks) Score() int {
	score := baseScore
	if c.WordCount >= detailedWordCount {
		score++
	}
	if c.HasSpecificExample {
		score += 2
	}
	if c.HasQuantifiedImpact {
		score++
	}
	if c.Length > minFocusedLength && c.Length < maxFocusedLength {
		score++
	}
	return min(maxScore, max(minScore, score))
}

// Feedback returns improvement hints for the checks, in a fixed order
func (c AnswerChecks) Feedback() []string {
	feedback := make([]string, 0, 4)
	if c.WordCount < briefWordCount {
		feedback = append(feedback, FeedbackMoreDetail)
	}
	if !c.HasSpecificExample {
		feedback = append(feedback, FeedbackSpecificExample)
	}
	if !c.HasQuantifiedImpact {
		feedback = append(feedback, FeedbackQuantify)
	}
	if c.Length < shortLength {
		feedback = append(feedback, FeedbackExpand)
	}
	return feedback
}

// wordCount counts whitespace-separated words; a blank answer counts as one word
func wordCount(answer string) int {
	n := len(strings.Fields(answer))
	if n == 0 {
		return 1
	}
	return n
}
