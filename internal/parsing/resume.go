// Package parsing extracts structured fields from resume text and signals from job descriptions.
// Extraction is heuristic and never fails: a field that cannot be located gets its sentinel value.
package parsing

import (
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

const (
	maxResumeSkills   = 10
	maxFallbackSkills = 5
	maxRoles          = 3
	nameLineWindow    = 3
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?[\d\-()\s]{10,}`)
	namePattern  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	skillSplit   = regexp.MustCompile(`[,\s]+`)

	// skillMatchers are tried in order; the first labelled line wins
	skillMatchers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Skills?:?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Technologies?:?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Programming:?\s*([^\n]+)`),
	}

	// educationMatchers return the whole match, label included
	educationMatchers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Education:?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)(B\.?[AES]\.?|M\.?[AES]\.?|PhD|Bachelor|Master)[^\n]*`),
	}

	// fallbackSkills is consulted only when no labelled skill line exists
	fallbackSkills = []string{"React", "JavaScript", "HTML", "CSS", "Node.js", "Python"}

	roleDashes = []string{"—", "–", "-"}
)

// ExtractResume parses raw resume text into a ParsedResume
func ExtractResume(raw string) types.ParsedResume {
	return types.ParsedResume{
		Name:       ExtractName(raw),
		Email:      ExtractEmail(raw),
		Phone:      ExtractPhone(raw),
		Skills:     ExtractSkills(raw),
		Roles:      ExtractRoles(raw),
		Education:  ExtractEducation(raw),
		RawContent: raw,
	}
}

// ExtractName looks at the first three non-blank lines for one that reads like a person's name
func ExtractName(raw string) string {
	checked := 0
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if checked == nameLineWindow {
			break
		}
		checked++

		trimmed := strings.TrimSpace(line)
		if textLength(line) < 50 && !strings.ContainsAny(line, "@.") && namePattern.MatchString(trimmed) {
			return trimmed
		}
	}
	return types.NotSpecified
}

// ExtractEmail returns the first email address in the text
func ExtractEmail(raw string) string {
	if m := emailPattern.FindString(raw); m != "" {
		return m
	}
	return types.NotSpecified
}

// ExtractPhone returns the first run of at least ten phone-like characters, trimmed
func ExtractPhone(raw string) string {
	for _, m := range phonePattern.FindAllString(raw, -1) {
		if trimmed := strings.TrimSpace(m); trimmed != "" {
			return trimmed
		}
	}
	return types.NotSpecified
}

// ExtractSkills reads the first labelled skill line, falling back to a small reference vocabulary
func ExtractSkills(raw string) []string {
	for _, re := range skillMatchers {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		skills := make([]string, 0, maxResumeSkills)
		for _, tok := range skillSplit.Split(m[1], -1) {
			if textLength(tok) <= 1 {
				continue
			}
			skills = append(skills, tok)
			if len(skills) == maxResumeSkills {
				break
			}
		}
		return skills
	}

	lower := strings.ToLower(raw)
	skills := make([]string, 0, maxFallbackSkills)
	for _, s := range fallbackSkills {
		if strings.Contains(lower, strings.ToLower(s)) {
			skills = append(skills, s)
			if len(skills) == maxFallbackSkills {
				break
			}
		}
	}
	return skills
}

// ExtractRoles collects up to three dash-bearing lines of plausible role length
func ExtractRoles(raw string) []string {
	var roles []string
	for _, line := range strings.Split(raw, "\n") {
		if !containsAny(line, roleDashes) {
			continue
		}
		if n := textLength(line); n >= 100 || n <= 10 {
			continue
		}
		roles = append(roles, strings.TrimSpace(line))
		if len(roles) == maxRoles {
			break
		}
	}
	if len(roles) == 0 {
		return []string{types.RolesNotParsed}
	}
	return roles
}

// ExtractEducation returns the labelled education line or the first degree mention
func ExtractEducation(raw string) string {
	for _, re := range educationMatchers {
		if m := re.FindString(raw); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return types.EducationNotSpecified
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// textLength counts UTF-16 code units, the unit length thresholds are expressed in
func textLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}
