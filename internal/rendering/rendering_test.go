package rendering

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTailored() types.TailoredResume {
	return types.TailoredResume{
		Name:       "Jane Doe",
		Contact:    "jane@x.com | Not specified",
		Summary:    "Experienced professional with 2+ key technologies including React, Node.js.",
		Skills:     []string{"React", "Node.js", "C#"},
		Experience: []string{"• Lead - Acme - Utilized Go to cut costs 30% & more.", "• Dev - Initech - Utilized Go."},
		Education:  "B.S. Computer_Science",
		Keywords:   []string{"Go"},
	}
}

func TestResumeText(t *testing.T) {
	expected := "Jane Doe\njane@x.com | Not specified\n\nSUMMARY\nExperienced professional with 2+ key technologies including React, Node.js.\n\nSKILLS\nReact, Node.js, C#\n\nEXPERIENCE\n• Lead - Acme - Utilized Go to cut costs 30% & more.\n• Dev - Initech - Utilized Go.\n\nEDUCATION\nB.S. Computer_Science"

	assert.Equal(t, expected, ResumeText(sampleTailored()))
}

func TestCoverLetterText(t *testing.T) {
	assert.Equal(t, "Dear Hiring Manager,", CoverLetterText("Dear Hiring Manager,"))
}

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "normal text", "normal text"},
		{"backslash", `a\b`, `a\textbackslash{}b`},
		{"braces", "text{with}braces", `text\{with\}braces`},
		{"dollar", "cost $100", `cost \$100`},
		{"ampersand", "A & B", `A \& B`},
		{"percent", "100% complete", `100\% complete`},
		{"hash", "C#", `C\#`},
		{"caret", "x^2", `x\textasciicircum{}2`},
		{"underscore", "snake_case", `snake\_case`},
		{"tilde", "~home", `\textasciitilde{}home`},
		{"bullet", "• item", `\textbullet{} item`},
		{"escapes are not re-escaped", `\{`, `\textbackslash{}\{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.input))
		})
	}
}

func TestRenderLaTeX_BuiltinTemplate(t *testing.T) {
	out, err := RenderLaTeX(sampleTailored(), "")

	require.NoError(t, err)
	assert.Contains(t, out, `\documentclass`)
	assert.Contains(t, out, `\textbf{Jane Doe}`)
	assert.Contains(t, out, `React, Node.js, C\#`)
	assert.Contains(t, out, `\item Lead - Acme - Utilized Go to cut costs 30\% \& more.`)
	assert.Contains(t, out, `B.S. Computer\_Science`)
	assert.NotContains(t, out, "•")
}

func TestRenderLaTeX_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.tex")
	require.NoError(t, os.WriteFile(path, []byte(`Name: {{escape .Name}} / {{len .Experience}}`), 0644))

	out, err := RenderLaTeX(sampleTailored(), path)

	require.NoError(t, err)
	assert.Equal(t, "Name: Jane Doe / 2", out)
}

func TestRenderLaTeX_TemplateErrors(t *testing.T) {
	_, err := RenderLaTeX(sampleTailored(), "/nonexistent/template.tex")
	var templateErr *TemplateError
	require.ErrorAs(t, err, &templateErr)
	assert.Equal(t, "/nonexistent/template.tex", templateErr.Template)
	assert.Contains(t, err.Error(), "template /nonexistent/template.tex: file not found")

	dir := t.TempDir()
	path := filepath.Join(dir, "invalid.tex")
	require.NoError(t, os.WriteFile(path, []byte(`{{.InvalidSyntax{{}}`), 0644))
	_, err = RenderLaTeX(sampleTailored(), path)
	assert.ErrorAs(t, err, &templateErr)

	missingField := filepath.Join(dir, "missing.tex")
	require.NoError(t, os.WriteFile(missingField, []byte(`{{.Nope}}`), 0644))
	_, err = RenderLaTeX(sampleTailored(), missingField)
	require.ErrorAs(t, err, &templateErr)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestRenderHTML(t *testing.T) {
	resume := sampleTailored()
	resume.Name = "Jane <script>Doe</script>"

	out, err := RenderHTML(resume)

	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Jane &lt;script&gt;Doe&lt;/script&gt;")
	assert.Contains(t, out, "<li>Lead - Acme - Utilized Go to cut costs 30% &amp; more.</li>")
	assert.Contains(t, out, "<span>C#</span>")
}

func TestPDFRenderer_Defaults(t *testing.T) {
	t.Setenv("CHROME_PATH", "/opt/chrome/chrome")

	r := NewPDFRenderer("")
	assert.Equal(t, "/opt/chrome/chrome", r.ChromePath)
	assert.Equal(t, defaultPDFTimeout, r.Timeout)

	explicit := NewPDFRenderer("/usr/bin/chromium")
	assert.Equal(t, "/usr/bin/chromium", explicit.ChromePath)
}

func TestPDFRenderer_RenderResumePDF(t *testing.T) {
	if testing.Short() || os.Getenv("CHROME_PATH") == "" {
		t.Skip("set CHROME_PATH to run the headless Chrome test")
	}

	pdf, err := NewPDFRenderer("").RenderResumePDF(context.Background(), sampleTailored())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}
