package rendering

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

const (
	defaultHTMLTemplate = "templates/resume.html.tmpl"
	defaultPDFTimeout   = 60 * time.Second

	// A4 in inches
	a4Width  = 8.27
	a4Height = 11.69
)

var htmlTemplate = template.Must(
	template.New("resume.html.tmpl").
		Funcs(template.FuncMap{"trimBullet": trimBullet}).
		ParseFS(templateFS, defaultHTMLTemplate),
)

// RenderHTML renders a tailored resume as a standalone HTML page
func RenderHTML(resume types.TailoredResume) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, resume); err != nil {
		return "", &TemplateError{Template: "resume.html", Message: "execution failed", Cause: err}
	}
	return buf.String(), nil
}

// PDFRenderer prints HTML to PDF with headless Chrome
type PDFRenderer struct {
	ChromePath string
	Timeout    time.Duration
}

// NewPDFRenderer creates a renderer; an empty chromePath falls back to CHROME_PATH, then the default lookup
func NewPDFRenderer(chromePath string) *PDFRenderer {
	if chromePath == "" {
		chromePath = os.Getenv("CHROME_PATH")
	}
	return &PDFRenderer{ChromePath: chromePath, Timeout: defaultPDFTimeout}
}

// RenderResumePDF renders a tailored resume to A4 PDF bytes
func (r *PDFRenderer) RenderResumePDF(ctx context.Context, resume types.TailoredResume) ([]byte, error) {
	html, err := RenderHTML(resume)
	if err != nil {
		return nil, err
	}
	return r.RenderHTMLToPDF(ctx, html)
}

// RenderHTMLToPDF loads html in a headless browser and prints it
func (r *PDFRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultPDFTimeout
	}
	runCtx, cancelRun := context.WithTimeout(browserCtx, timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "tailored-resume-")
	if err != nil {
		return nil, &RenderError{Format: "pdf", Message: "could not create temp dir", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &RenderError{Format: "pdf", Message: "could not write HTML", Cause: err}
	}

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Format: "pdf", Message: "printing failed", Cause: err}
	}
	return pdf, nil
}
