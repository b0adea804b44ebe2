package rendering

import (
	"strings"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

// Download file names
const (
	ResumeTextFile      = "tailored_resume.txt"
	ResumeLaTeXFile     = "tailored_resume.tex"
	ResumePDFFile       = "tailored_resume.pdf"
	CoverLetterTextFile = "tailored_cover_letter.txt"
	QuestionsFile       = "interview_questions.json"
)

// ResumeText lays out a tailored resume as plain text for copying or download
func ResumeText(resume types.TailoredResume) string {
	var b strings.Builder
	b.WriteString(resume.Name)
	b.WriteString("\n")
	b.WriteString(resume.Contact)
	b.WriteString("\n\nSUMMARY\n")
	b.WriteString(resume.Summary)
	b.WriteString("\n\nSKILLS\n")
	b.WriteString(strings.Join(resume.Skills, ", "))
	b.WriteString("\n\nEXPERIENCE\n")
	b.WriteString(strings.Join(resume.Experience, "\n"))
	b.WriteString("\n\nEDUCATION\n")
	b.WriteString(resume.Education)
	return b.String()
}

// CoverLetterText returns the cover letter as downloaded
func CoverLetterText(letter string) string {
	return letter
}
