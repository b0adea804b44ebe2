package ingestion

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	htmlDocument    = regexp.MustCompile(`(?i)^\s*<(!doctype\s+html|html|head|body)\b`)
	innerWhitespace = regexp.MustCompile(`[ \t]+`)
	blankRuns       = regexp.MustCompile(`\n\n\n+`)
)

// blockSelectors end a line of text when a job description is pasted as HTML
const blockSelectors = "p, div, section, article, header, footer, h1, h2, h3, h4, h5, h6, tr, ul, ol"

// LooksLikeHTML reports whether text is an HTML document rather than prose that mentions tags
func LooksLikeHTML(text string) bool {
	return htmlDocument.MatchString(strings.TrimPrefix(text, "\ufeff"))
}

// JobText returns the job description text to mine for signals.
// An HTML document is reduced to its readable text; anything else is returned unchanged.
func JobText(raw string) (string, error) {
	if !LooksLikeHTML(raw) {
		return raw, nil
	}
	return HTMLToText(raw)
}

// HTMLToText extracts readable text from an HTML fragment, one block per line
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &DocumentError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, template").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
		s.AppendHtml("\n")
	})
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CleanText(doc.Text()), nil
}

// CleanText normalizes line endings, collapses runs of spaces, and caps blank lines at one
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(innerWhitespace.ReplaceAllString(line, " "))
	}

	result := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// ReadDocument loads a local resume file as an upload would arrive
func ReadDocument(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	return NewDocument(filepath.Base(path), contentType, data), nil
}

// IngestFromFile reads a job description file and returns its text with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	data, err := readFile(path)
	if err != nil {
		return "", nil, err
	}

	var text string
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".html" || ext == ".htm" {
		text, err = HTMLToText(string(data))
	} else {
		text, err = JobText(string(data))
	}
	if err != nil {
		return "", nil, err
	}
	return text, NewMetadata(text, path), nil
}

func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}
