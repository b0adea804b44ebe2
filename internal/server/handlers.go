package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/parsing"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/pipeline"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

const (
	// maxRequestBytes bounds request bodies; uploads add multipart framing on top of the document
	maxRequestBytes = ingestion.MaxDocumentSize + 1<<20
	// maxFormMemory is how much of a multipart upload is held in memory before spilling to disk
	maxFormMemory = 32 << 20
)

// requestInputs are the resume and job inputs of a parse or generate request
type requestInputs struct {
	Resume         *ingestion.Document
	ResumeText     string
	JobDescription string
}

// readInputs reads a multipart form (resume file, resume_text, job_description) or a JSON body
func (s *Server) readInputs(w http.ResponseWriter, r *http.Request) (*requestInputs, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req types.GenerateRequest
		if err := s.decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return &requestInputs{ResumeText: req.ResumeText, JobDescription: req.JobDescription}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, &ErrValidation{Field: "body", Message: "invalid multipart form: " + err.Error()}
	}

	in := &requestInputs{
		ResumeText:     r.FormValue("resume_text"),
		JobDescription: r.FormValue("job_description"),
	}

	file, header, err := r.FormFile("resume")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return in, nil
	case err != nil:
		return nil, &ErrValidation{Field: "resume", Message: err.Error()}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	in.Resume = ingestion.NewDocument(header.Filename, header.Header.Get("Content-Type"), data)
	return in, nil
}

// decodeJSON decodes a bounded JSON request body into v
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// handleParseResume extracts the structured fields of a resume without starting a session
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	in, err := s.readInputs(w, r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if err := ingestion.ValidateDocument(in.Resume); err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	text := in.ResumeText
	if in.Resume != nil {
		text = ingestion.DecodeResume(in.Resume, in.ResumeText)
	}
	if text == "" {
		s.errorFromErr(w, r, &ErrValidation{Field: "resume", Message: "upload a resume file or provide resume_text"})
		return
	}

	s.jsonResponse(w, http.StatusOK, parsing.ExtractResume(text))
}

// handleParseJob extracts keywords and requirement sentences from a job description
func (s *Server) handleParseJob(w http.ResponseWriter, r *http.Request) {
	var req types.ParseJobRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	text, err := ingestion.JobText(req.JobDescription)
	if err != nil {
		s.errorFromErr(w, r, &ErrValidation{Field: "job_description", Message: err.Error()})
		return
	}

	s.jsonResponse(w, http.StatusOK, parsing.ExtractJobSignals(text))
}

// handleEvaluate scores an answer to an arbitrary question; an empty answer is scored, not rejected
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req types.EvaluateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	eval, err := s.evaluator.Evaluate(r.Context(), req.Question, req.Answer, req.ModelAnswer)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, eval)
}

// generateInput reads and checks the inputs of a generation cycle
func (s *Server) generateInput(w http.ResponseWriter, r *http.Request) (*pipeline.GenerateInput, error) {
	in, err := s.readInputs(w, r)
	if err != nil {
		return nil, err
	}
	if in.Resume == nil {
		req := types.GenerateRequest{ResumeText: in.ResumeText, JobDescription: in.JobDescription}
		if err := req.Validate(); err != nil {
			return nil, ingestion.ErrMissingInput
		}
	}
	return &pipeline.GenerateInput{
		Resume:         in.Resume,
		ResumeText:     in.ResumeText,
		JobDescription: in.JobDescription,
	}, nil
}

// generateResponse issues the session token for a new snapshot
func (s *Server) generateResponse(state *types.AppState) (*types.GenerateResponse, error) {
	token, err := s.tokens.GenerateToken(state.ID)
	if err != nil {
		return nil, err
	}
	return &types.GenerateResponse{SessionID: state.ID, Token: token, State: *state}, nil
}

// handleGenerate runs a generation cycle and returns the new session with its token
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	in, err := s.generateInput(w, r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	state, err := s.generator.Generate(r.Context(), *in)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	resp, err := s.generateResponse(state)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleGenerateStream runs a generation cycle and streams progress via SSE
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	in, err := s.generateInput(w, r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	in.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent(EventStep, event); err != nil {
			s.logger.WithError(err).Warn("failed to write SSE event")
		}
	}

	state, err := s.generator.Generate(r.Context(), *in)
	if err != nil {
		s.streamError(sse, r, err)
		return
	}
	resp, err := s.generateResponse(state)
	if err != nil {
		s.streamError(sse, r, err)
		return
	}
	sse.WriteEvent(EventComplete, resp) //nolint:errcheck
}

// streamError ends an SSE stream with an error event
func (s *Server) streamError(sse *SSEWriter, r *http.Request, err error) {
	if HTTPStatus(err) >= http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("stream failed")
	}
	sse.WriteError(err)
}
