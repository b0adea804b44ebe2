// Package schemas embeds the JSON Schemas that generated artifacts are validated against.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS

// Artifact schema names
const (
	ParsedResume       = "parsed_resume"
	JobSignals         = "job_signals"
	TailoredResume     = "tailored_resume"
	InterviewQuestions = "interview_questions"
	PracticeSession    = "practice_session"
)

// Names lists every artifact schema
var Names = []string{ParsedResume, JobSignals, TailoredResume, InterviewQuestions, PracticeSession}

// FileName returns the embedded file name for a schema name
func FileName(name string) string {
	return name + ".schema.json"
}
