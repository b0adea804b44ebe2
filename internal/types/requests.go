package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// GenerateRequest is the JSON body for a generation cycle.
// At least one of the two inputs must be supplied; the missing one is filled from the sample inputs.
type GenerateRequest struct {
	ResumeText     string `json:"resume_text" validate:"required_without=JobDescription"`
	JobDescription string `json:"job_description" validate:"required_without=ResumeText"`
}

// GenerateResponse is returned after a generation cycle creates a session
type GenerateResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
	State     AppState  `json:"state"`
}

// ParseJobRequest is the JSON body for job signal extraction
type ParseJobRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
}

// EvaluateRequest is the JSON body for a stateless answer evaluation
type EvaluateRequest struct {
	Question    string `json:"question" validate:"required"`
	Answer      string `json:"answer"`
	ModelAnswer string `json:"model_answer" validate:"required"`
}

// PracticeRequest is the JSON body for answering a generated question
type PracticeRequest struct {
	QuestionID int    `json:"question_id" validate:"required,min=1"`
	Answer     string `json:"answer" validate:"required"`
}

// SessionSummary is a compact listing entry for stored sessions
type SessionSummary struct {
	ID         uuid.UUID `json:"id"`
	ResumeName string    `json:"resume_name,omitempty"`
	Name       string    `json:"name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ParseJobRequest using the validator.
func (r *ParseJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the EvaluateRequest using the validator.
func (r *EvaluateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the PracticeRequest using the validator.
func (r *PracticeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
