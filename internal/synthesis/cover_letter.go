package synthesis

import (
	"regexp"
	"text/template"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

const companyName = "the company"

var positionPattern = regexp.MustCompile(`(?i)hiring\s+(?:a\s+)?([^.]+?)(?:\s+to|\s+for|\.)`)

var coverLetterTemplate = template.Must(template.New("cover_letter").Parse(`Dear Hiring Manager,

I am writing to express my strong interest in the {{.Position}} position at {{.Company}}. With my background in {{.TopThreeSkills}}, I am excited about the opportunity to contribute to your team's success.

In my previous roles, I have gained extensive experience with {{.TopTwoSkills}}, directly aligning with your requirements. My projects have consistently delivered measurable results, including {{or .FirstRole "technical solutions that drive business value"}}. I am particularly drawn to this opportunity because of {{.Motivation}}.

I would welcome the opportunity to discuss how my experience with {{.TopTwoSkills}} can help {{.Company}} achieve its goals. Thank you for considering my application.

Best regards,
{{.Name}}`))

type coverLetterFields struct {
	Position       string
	Company        string
	TopThreeSkills string
	TopTwoSkills   string
	FirstRole      string
	Motivation     string
	Name           string
}

// WriteCoverLetter fills the fixed cover letter with resume details and the job's title and first requirement
func WriteCoverLetter(resume types.ParsedResume, signals types.JobSignals) string {
	fields := coverLetterFields{
		Position:       Position(signals.Source),
		Company:        companyName,
		TopThreeSkills: joinFirst(resume.Skills, 3, ", "),
		TopTwoSkills:   joinFirst(resume.Skills, 2, " and "),
		FirstRole:      first(resume.Roles),
		Motivation:     leadingWords(first(signals.Requirements), 10, "the technical challenges and growth potential"),
		Name:           resume.Name,
	}

	return mustExecute(coverLetterTemplate, fields)
}

// Position returns the job title following "hiring (a)" in the description, or "this role"
func Position(jobText string) string {
	if m := positionPattern.FindStringSubmatch(jobText); m != nil && m[1] != "" {
		return m[1]
	}
	return "this role"
}
