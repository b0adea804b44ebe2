package parsing

import (
	"regexp"
	"strings"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

const (
	maxKeywords     = 15
	maxRequirements = 5
)

var (
	techVocabulary = regexp.MustCompile(`(?i)\b(React|JavaScript|Python|Java|Node\.js|CSS|HTML|Git|API|Database|SQL|MongoDB|PostgreSQL|AWS|Docker|Kubernetes|TypeScript|Vue|Angular|Express|Django|Flask)\b`)
	roleVocabulary = regexp.MustCompile(`(?i)\b(experience|years|senior|junior|lead|manager|developer|engineer|architect|analyst|designer|consultant)\b`)

	sentenceSplit      = regexp.MustCompile(`[.!?]`)
	requirementPattern = regexp.MustCompile(`(?i)required|must|need|should|experience|years|skill`)
)

// ExtractJobSignals mines keywords and requirement sentences from a job description
func ExtractJobSignals(jobText string) types.JobSignals {
	return types.JobSignals{
		Keywords:     ExtractKeywords(jobText),
		Requirements: ExtractRequirements(jobText),
		Source:       jobText,
	}
}

// ExtractKeywords returns technology matches followed by seniority/role matches.
// Matches keep the casing found in the text; exact duplicates are dropped.
func ExtractKeywords(jobText string) []string {
	matches := techVocabulary.FindAllString(jobText, -1)
	matches = append(matches, roleVocabulary.FindAllString(jobText, -1)...)

	keywords := make([]string, 0, maxKeywords)
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		keywords = append(keywords, m)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// ExtractRequirements returns up to five sentences that read like requirements
func ExtractRequirements(jobText string) []string {
	requirements := make([]string, 0, maxRequirements)
	for _, sentence := range sentenceSplit.Split(jobText, -1) {
		trimmed := strings.TrimSpace(sentence)
		if textLength(trimmed) <= 10 {
			continue
		}
		if !requirementPattern.MatchString(sentence) {
			continue
		}
		requirements = append(requirements, trimmed)
		if len(requirements) == maxRequirements {
			break
		}
	}
	return requirements
}
