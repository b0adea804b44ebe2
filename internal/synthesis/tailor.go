// Package synthesis produces the tailored resume, cover letter and interview question set
// from a parsed resume and the signals of a job description. All output is deterministic.
package synthesis

import (
	"fmt"
	"strings"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

const (
	maxTailoredSkills   = 12
	maxTailoredKeywords = 8
)

// Synthesize runs every generator against one resume and job description
func Synthesize(resume types.ParsedResume, signals types.JobSignals) types.GeneratedContent {
	return types.GeneratedContent{
		TailoredResume:     TailorResume(resume, signals),
		CoverLetter:        WriteCoverLetter(resume, signals),
		InterviewQuestions: InterviewQuestions(resume),
	}
}

// TailorResume merges job keywords into the resume's skills and rewrites its summary and experience
func TailorResume(resume types.ParsedResume, signals types.JobSignals) types.TailoredResume {
	keywords := signals.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	focus := leadingWords(first(signals.Requirements), 8, "technical excellence")

	experience := make([]string, 0, len(resume.Roles))
	for _, role := range resume.Roles {
		experience = append(experience, fmt.Sprintf(
			"• %s - Utilized %s to deliver high-impact solutions, focusing on %s.",
			role, joinFirst(keywords, 2, " and "), focus,
		))
	}

	return types.TailoredResume{
		Name:    resume.Name,
		Contact: resume.Email + " | " + resume.Phone,
		Summary: fmt.Sprintf(
			"Experienced professional with %d+ key technologies including %s. Proven track record in %s with focus on delivering scalable solutions and driving business impact.",
			len(resume.Skills), joinFirst(resume.Skills, 3, ", "), joinFirst(keywords, 2, " and "),
		),
		Skills:     truncate(mergeSkills(resume.Skills, keywords), maxTailoredSkills),
		Experience: experience,
		Education:  resume.Education,
		Keywords:   truncate(keywords, maxTailoredKeywords),
	}
}

// mergeSkills appends each keyword that no collected skill already contains (case-insensitive).
// Keywords appended earlier count as collected for later keywords.
func mergeSkills(skills, keywords []string) []string {
	merged := make([]string, len(skills), len(skills)+len(keywords))
	copy(merged, skills)
	lowered := make([]string, 0, cap(merged))
	for _, s := range skills {
		lowered = append(lowered, strings.ToLower(s))
	}

	for _, kw := range keywords {
		needle := strings.ToLower(kw)
		covered := false
		for _, s := range lowered {
			if strings.Contains(s, needle) {
				covered = true
				break
			}
		}
		if !covered {
			merged = append(merged, kw)
			lowered = append(lowered, needle)
		}
	}
	return merged
}

func joinFirst(items []string, n int, sep string) string {
	return strings.Join(truncate(items, n), sep)
}

func truncate(items []string, n int) []string {
	if len(items) > n {
		return items[:n:n]
	}
	return items
}

func first(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[0]
}

func at(items []string, i int) string {
	if i < len(items) {
		return items[i]
	}
	return ""
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// leadingWords keeps the first n space-separated words of s, or fallback when s is empty
func leadingWords(s string, n int, fallback string) string {
	if s == "" {
		return fallback
	}
	return orDefault(strings.Join(truncate(strings.Split(s, " "), n), " "), fallback)
}
