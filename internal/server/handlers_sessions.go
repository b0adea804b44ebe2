package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/db"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/evaluation"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/rendering"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/server/middleware"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

// PracticeResponse is a practice attempt with its display band
type PracticeResponse struct {
	types.PracticeSession
	Band types.ScoreBand `json:"band"`
}

func newPracticeResponse(p types.PracticeSession) PracticeResponse {
	return PracticeResponse{PracticeSession: p, Band: p.Band()}
}

// loadSession returns the snapshot the request's token was issued for
func (s *Server) loadSession(r *http.Request) (*types.AppState, error) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		return nil, err
	}
	state, err := s.store.GetSession(r.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if state == nil {
		return nil, db.ErrSessionNotFound
	}
	return state, nil
}

// loadGenerated is loadSession for routes that need generated content
func (s *Server) loadGenerated(r *http.Request) (*types.AppState, error) {
	state, err := s.loadSession(r)
	if err != nil {
		return nil, err
	}
	if !state.Generated() {
		return nil, evaluation.ErrNotGenerated
	}
	return state, nil
}

// handleGetSession returns the full session snapshot
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.loadSession(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, state)
}

// handleDeleteSession removes the session and its practice attempts
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if err := s.store.DeleteSession(r.Context(), id); err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListQuestions returns the session's generated interview questions
func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	state, err := s.loadSession(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if len(state.InterviewQuestions) == 0 {
		s.errorFromErr(w, r, evaluation.ErrNotGenerated)
		return
	}
	s.jsonResponse(w, http.StatusOK, state.InterviewQuestions)
}

// readPractice decodes and validates a practice request and loads its session
func (s *Server) readPractice(w http.ResponseWriter, r *http.Request) (*types.AppState, *types.PracticeRequest, error) {
	var req types.PracticeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		return nil, nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	state, err := s.loadSession(r)
	if err != nil {
		return nil, nil, err
	}
	return state, &req, nil
}

// practice evaluates the answer and records it as the question's latest attempt
func (s *Server) practice(ctx context.Context, state *types.AppState, req *types.PracticeRequest) (*types.PracticeSession, error) {
	attempt, err := s.evaluator.Practice(ctx, *state, req.QuestionID, req.Answer)
	if err != nil {
		return nil, err
	}
	if err := s.store.SavePractice(ctx, state.ID, attempt); err != nil {
		return nil, fmt.Errorf("failed to save practice attempt: %w", err)
	}
	return &attempt, nil
}

// handlePractice evaluates an answer to one of the session's questions
func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	state, req, err := s.readPractice(w, r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	attempt, err := s.practice(r.Context(), state, req)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newPracticeResponse(*attempt))
}

// handlePracticeStream evaluates an answer, announcing the evaluation before the result arrives
func (s *Server) handlePracticeStream(w http.ResponseWriter, r *http.Request) {
	state, req, err := s.readPractice(w, r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := sse.WriteEvent(EventEvaluating, map[string]any{
		"question_id": req.QuestionID,
		"delay_ms":    s.evaluator.Delay().Milliseconds(),
	}); err != nil {
		s.logger.WithError(err).Warn("failed to write SSE event")
	}

	attempt, err := s.practice(r.Context(), state, req)
	if err != nil {
		s.streamError(sse, r, err)
		return
	}
	sse.WriteEvent(EventResult, newPracticeResponse(*attempt)) //nolint:errcheck
}

// handleGetPractice returns the latest attempt at one question
func (s *Server) handleGetPractice(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(r.PathValue("question_id"))
	if err != nil || questionID < 1 {
		s.errorFromErr(w, r, &ErrValidation{Field: "question_id", Message: "must be a positive integer"})
		return
	}
	id, err := middleware.GetSessionID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	attempt, err := s.store.GetPractice(r.Context(), id, questionID)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if attempt == nil {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("no practice attempt for question %d", questionID))
		return
	}
	s.jsonResponse(w, http.StatusOK, newPracticeResponse(*attempt))
}

// writeAttachment sends body as a file download
func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck
}

// handleResumeText downloads the tailored resume as plain text
func (s *Server) handleResumeText(w http.ResponseWriter, r *http.Request) {
	state, err := s.loadGenerated(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	writeAttachment(w, "text/plain; charset=utf-8", rendering.ResumeTextFile, []byte(rendering.ResumeText(*state.TailoredResume)))
}

// handleResumeLaTeX downloads the tailored resume as LaTeX source
func (s *Server) handleResumeLaTeX(w http.ResponseWriter, r *http.Request) {
	state, err := s.loadGenerated(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	tex, err := rendering.RenderLaTeX(*state.TailoredResume, "")
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	writeAttachment(w, "application/x-tex; charset=utf-8", rendering.ResumeLaTeXFile, []byte(tex))
}

// handleResumePDF renders the tailored resume to PDF in a headless browser
func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	state, err := s.loadGenerated(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	pdf, err := s.pdf.RenderResumePDF(r.Context(), *state.TailoredResume)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	writeAttachment(w, "application/pdf", rendering.ResumePDFFile, pdf)
}

// handleCoverLetterText downloads the cover letter as plain text
func (s *Server) handleCoverLetterText(w http.ResponseWriter, r *http.Request) {
	state, err := s.loadGenerated(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	writeAttachment(w, "text/plain; charset=utf-8", rendering.CoverLetterTextFile, []byte(rendering.CoverLetterText(state.CoverLetter)))
}
