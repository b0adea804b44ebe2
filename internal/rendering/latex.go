// Package rendering exports tailored resumes and cover letters as text, LaTeX, HTML and PDF.
package rendering

import (
	"embed"
	"os"
	"strings"
	"text/template"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const defaultLaTeXTemplate = "templates/resume.tex.tmpl"

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`•`, `\textbullet{}`,
)

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	return latexReplacer.Replace(text)
}

// trimBullet drops the leading bullet glyph of an experience line
func trimBullet(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "•"))
}

var latexFuncs = template.FuncMap{
	"escape":     EscapeLaTeX,
	"join":       strings.Join,
	"trimBullet": trimBullet,
}

// RenderLaTeX renders a tailored resume as a LaTeX document.
// An empty templatePath selects the built-in template.
func RenderLaTeX(resume types.TailoredResume, templatePath string) (string, error) {
	name := templatePath
	if name == "" {
		name = defaultLaTeXTemplate
	}

	tmpl, err := parseTemplate(name, templatePath)
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, resume); err != nil {
		return "", &TemplateError{Template: name, Message: "execution failed", Cause: err}
	}
	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file, or the built-in one when templatePath is empty
func parseTemplate(name, templatePath string) (*template.Template, error) {
	var (
		content []byte
		err     error
	)
	if templatePath == "" {
		content, err = templateFS.ReadFile(defaultLaTeXTemplate)
	} else {
		content, err = os.ReadFile(templatePath)
	}
	if err != nil {
		msg := "unreadable"
		if os.IsNotExist(err) {
			msg = "file not found"
		}
		return nil, &TemplateError{Template: name, Message: msg, Cause: err}
	}

	tmpl, err := template.New("resume").Funcs(latexFuncs).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Template: name, Message: "parse failed", Cause: err}
	}
	return tmpl, nil
}
