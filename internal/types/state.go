package types

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// AppState is an immutable snapshot of one tailoring session.
// Transitions return a new snapshot; the receiver is never modified.
type AppState struct {
	ID                 uuid.UUID           `json:"id"`
	ResumeName         string              `json:"resume_name,omitempty"`
	JobDescription     string              `json:"job_description"`
	ParsedResume       *ParsedResume       `json:"parsed_resume,omitempty"`
	TailoredResume     *TailoredResume     `json:"tailored_resume,omitempty"`
	CoverLetter        string              `json:"cover_letter,omitempty"`
	InterviewQuestions []InterviewQuestion `json:"interview_questions,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// NewAppState returns an empty session snapshot
func NewAppState(id uuid.UUID, now time.Time) AppState {
	return AppState{ID: id, CreatedAt: now, UpdatedAt: now}
}

// WithResume records the name of the uploaded resume document
func (s AppState) WithResume(name string) AppState {
	next := s.clone()
	next.ResumeName = name
	return next
}

// WithJobDescription records the job description text
func (s AppState) WithJobDescription(text string) AppState {
	next := s.clone()
	next.JobDescription = text
	return next
}

// WithGenerated records the result of a generation cycle
func (s AppState) WithGenerated(parsed ParsedResume, content GeneratedContent, now time.Time) AppState {
	next := s.clone()
	p := parsed
	p.Skills = slices.Clone(parsed.Skills)
	p.Roles = slices.Clone(parsed.Roles)
	t := content.TailoredResume
	t.Skills = slices.Clone(t.Skills)
	t.Experience = slices.Clone(t.Experience)
	t.Keywords = slices.Clone(t.Keywords)
	next.ParsedResume = &p
	next.TailoredResume = &t
	next.CoverLetter = content.CoverLetter
	next.InterviewQuestions = slices.Clone(content.InterviewQuestions)
	next.UpdatedAt = now
	return next
}

// Generated reports whether a generation cycle has populated the snapshot
func (s AppState) Generated() bool {
	return s.ParsedResume != nil && s.TailoredResume != nil
}

// Question returns the generated question with the given id
func (s AppState) Question(id int) (InterviewQuestion, bool) {
	for _, q := range s.InterviewQuestions {
		if q.ID == id {
			return q, true
		}
	}
	return InterviewQuestion{}, false
}

// Content returns the generated artifacts held by the snapshot
func (s AppState) Content() GeneratedContent {
	var content GeneratedContent
	if s.TailoredResume != nil {
		content.TailoredResume = *s.TailoredResume
	}
	content.CoverLetter = s.CoverLetter
	content.InterviewQuestions = s.InterviewQuestions
	return content
}

func (s AppState) clone() AppState {
	next := s
	next.InterviewQuestions = slices.Clone(s.InterviewQuestions)
	return next
}
