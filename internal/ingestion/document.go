// Package ingestion turns uploaded resume documents and pasted job descriptions into text.
package ingestion

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxDocumentSize is the largest resume upload accepted, in bytes
const MaxDocumentSize = 10 * 1024 * 1024

// Content types accepted for resume uploads
const (
	ContentTypeText = "text/plain"
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Placeholder text substituted for binary formats that are not decoded
const (
	PDFPlaceholder      = "PDF parsing not implemented in demo"
	DocumentPlaceholder = "Document parsing not implemented in demo"
)

var allowedContentTypes = []string{ContentTypeText, ContentTypePDF, ContentTypeDOCX}

// Document is an uploaded resume file
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewDocument builds a Document, sniffing the content type when none is declared
func NewDocument(name, contentType string, data []byte) *Document {
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = DetectContentType(data)
	}
	return &Document{Name: name, ContentType: contentType, Data: data}
}

// DetectContentType sniffs the media type of data, without parameters
func DetectContentType(data []byte) string {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is(ContentTypeDOCX):
		return ContentTypeDOCX
	case mt.Is(ContentTypePDF):
		return ContentTypePDF
	case mt.Is(ContentTypeText):
		return ContentTypeText
	}
	return baseMediaType(mt.String())
}

// IsText reports whether the document is read as plain text
func (d *Document) IsText() bool {
	return baseMediaType(d.ContentType) == ContentTypeText || strings.HasSuffix(d.Name, ".txt")
}

// IsPDF reports whether the document declares itself as a PDF
func (d *Document) IsPDF() bool {
	return baseMediaType(d.ContentType) == ContentTypePDF
}

// ValidateDocument enforces the upload size limit and accepted formats
func ValidateDocument(d *Document) error {
	if d == nil {
		return nil
	}
	if len(d.Data) > MaxDocumentSize {
		return &DocumentError{Message: "file size must be less than 10MB"}
	}
	ct := baseMediaType(d.ContentType)
	for _, allowed := range allowedContentTypes {
		if ct == allowed {
			return nil
		}
	}
	if strings.HasSuffix(d.Name, ".txt") {
		return nil
	}
	return &DocumentError{Message: "please upload a PDF, DOCX, or text file", ContentType: d.ContentType}
}

// DecodeResume returns the text to parse for a resume upload.
// Binary formats are not decoded: fallbackText is used when given, else a fixed placeholder.
func DecodeResume(d *Document, fallbackText string) string {
	switch {
	case d == nil:
		return fallbackText
	case d.IsText():
		return string(d.Data)
	case d.IsPDF():
		return orFallback(fallbackText, PDFPlaceholder)
	default:
		return orFallback(fallbackText, DocumentPlaceholder)
	}
}

func orFallback(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func baseMediaType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
