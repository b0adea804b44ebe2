// Package observability provides logging setup and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes, marking the cut with "..."
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintParsedResume outputs the fields extracted from a resume
func (p *Printer) PrintParsedResume(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", resume.Name))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", resume.Email))
	sb.WriteString(fmt.Sprintf("Phone:     %s\n", resume.Phone))
	sb.WriteString(fmt.Sprintf("Education: %s\n", resume.Education))
	sb.WriteString(fmt.Sprintf("Skills:    %s\n", strings.Join(resume.Skills, ", ")))
	sb.WriteString("\n")
	writeList(&sb, "Roles", resume.Roles, maxItemsToShow)

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobSignals outputs the keywords and requirements found in a job description
func (p *Printer) PrintJobSignals(signals *types.JobSignals) {
	if signals == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Keywords (%d): %s\n", len(signals.Keywords), strings.Join(signals.Keywords, ", ")))
	sb.WriteString("\n")
	if len(signals.Requirements) == 0 {
		sb.WriteString("No requirement sentences found\n")
	}
	writeList(&sb, "Requirements", signals.Requirements, maxItemsToShow)

	p.printBox("JOB SIGNALS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTailoredResume outputs a summary of the tailored resume
func (p *Printer) PrintTailoredResume(resume *types.TailoredResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", resume.Name))
	sb.WriteString(fmt.Sprintf("Contact:  %s\n", resume.Contact))
	sb.WriteString(fmt.Sprintf("Skills:   %d (%d job keywords)\n", len(resume.Skills), len(resume.Keywords)))
	sb.WriteString("\n")
	writeList(&sb, "Experience", resume.Experience, 3)

	p.printBox("TAILORED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestions outputs the generated interview questions
func (p *Printer) PrintQuestions(questions []types.InterviewQuestion) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	for _, q := range questions {
		sb.WriteString(q.String() + "\n")
	}

	p.printBox(fmt.Sprintf("INTERVIEW QUESTIONS (%d)", len(questions)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPracticeSession outputs the score and feedback of a practice attempt
func (p *Printer) PrintPracticeSession(session *types.PracticeSession) {
	if session == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Question: %d\n", session.QuestionID))
	sb.WriteString(fmt.Sprintf("Score:    %d/10 (%s)\n", session.Score, session.Band()))
	sb.WriteString("\n")
	if len(session.Feedback) == 0 {
		sb.WriteString("✅ No improvement hints\n")
	}
	for _, f := range session.Feedback {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", f))
	}

	p.printBox("ANSWER EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}
