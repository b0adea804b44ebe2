// Package types provides type definitions for structured data used throughout the resume tailoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Sentinel values used when a resume field cannot be located
const (
	NotSpecified          = "Not specified"
	RolesNotParsed        = "Previous experience details not clearly parsed"
	EducationNotSpecified = "Education details not specified"
)

// ParsedResume is the structured view of a resume's raw text.
// Every field is either extracted or set to its sentinel; none is ever empty.
type ParsedResume struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Roles      []string `json:"roles"`
	Education  string   `json:"education"`
	RawContent string   `json:"raw_content"`
}

// HasParsedRoles reports whether at least one role line was found
func (p ParsedResume) HasParsedRoles() bool {
	return len(p.Roles) > 0 && !(len(p.Roles) == 1 && p.Roles[0] == RolesNotParsed)
}

// JobSignals holds the keywords and requirement sentences mined from a job description
type JobSignals struct {
	Keywords     []string `json:"keywords"`
	Requirements []string `json:"requirements"`
	// Source is the job description the signals were extracted from.
	Source string `json:"-"`
}

// TailoredResume is a resume rewritten toward a specific job description
type TailoredResume struct {
	Name       string   `json:"name"`
	Contact    string   `json:"contact"`
	Summary    string   `json:"summary"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  string   `json:"education"`
	Keywords   []string `json:"keywords"`
}

// GeneratedContent bundles the output of one synthesis pass
type GeneratedContent struct {
	TailoredResume     TailoredResume      `json:"tailored_resume"`
	CoverLetter        string              `json:"cover_letter"`
	InterviewQuestions []InterviewQuestion `json:"interview_questions"`
}
