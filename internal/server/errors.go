// Package server provides the HTTP REST API for resume tailoring and interview practice.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/db"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/evaluation"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		documentErr   *ingestion.DocumentError
		fieldErrs     validator.ValidationErrors
		tooLarge      *http.MaxBytesError
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validationErr),
		errors.As(err, &documentErr),
		errors.As(err, &fieldErrs),
		errors.Is(err, ingestion.ErrMissingInput),
		errors.Is(err, evaluation.ErrEmptyAnswer):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrSessionNotFound),
		errors.Is(err, evaluation.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, evaluation.ErrNotGenerated):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
