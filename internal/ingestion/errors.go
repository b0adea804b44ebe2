package ingestion

import (
	"errors"
	"fmt"
)

// ErrMissingInput is returned when neither a resume nor a job description was supplied
var ErrMissingInput = errors.New("please upload a resume and enter a job description")

// DocumentError represents a rejected upload
type DocumentError struct {
	Message     string
	ContentType string
	Cause       error
}

func (e *DocumentError) Error() string {
	if e.ContentType != "" {
		return fmt.Sprintf("%s (got %s)", e.Message, e.ContentType)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}
