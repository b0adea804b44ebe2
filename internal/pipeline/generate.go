// Package pipeline provides the high-level orchestration of a generation cycle:
// resolve inputs, extract, synthesize, validate, snapshot and persist.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/cache"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/db"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/parsing"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/schemas"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/synthesis"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
	artifactschemas "github.com/Vijay417-sys/AI-Resume-Tailor/schemas"
)

// Step names reported through ProgressEvent
const (
	StepIngestResume   = "ingest_resume"
	StepExtractResume  = "extract_resume"
	StepExtractSignals = "extract_signals"
	StepSynthesize     = "synthesize"
	StepPersist        = "persist"
)

// ProgressEvent represents a progress update during a generation cycle
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// GenerateInput holds the user inputs of one generation cycle.
// Either input may be empty; the missing one is filled from the sample inputs.
type GenerateInput struct {
	Resume         *ingestion.Document
	ResumeText     string
	JobDescription string
	OnProgress     ProgressCallback
}

// cycle is the cached result of extraction and synthesis for one input pair
type cycle struct {
	Parsed  types.ParsedResume     `json:"parsed"`
	Signals types.JobSignals       `json:"signals"`
	Content types.GeneratedContent `json:"content"`
}

// Generator runs generation cycles
type Generator struct {
	cache  *cache.Cache
	store  db.Store
	logger *logrus.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// Option configures a Generator
type Option func(*Generator)

// WithCache caches synthesized content by input hash
func WithCache(c *cache.Cache) Option {
	return func(g *Generator) { g.cache = c }
}

// WithStore persists every new snapshot
func WithStore(s db.Store) Option {
	return func(g *Generator) { g.store = s }
}

// WithLogger sets the logger
func WithLogger(l *logrus.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp snapshots
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a Generator; without options it neither caches nor persists
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger: logrus.StandardLogger(),
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// emitProgress calls the progress callback if configured
func emitProgress(in *GenerateInput, step, message string, content any) {
	if in.OnProgress != nil {
		in.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// Generate runs one generation cycle and returns the new session snapshot
func (g *Generator) Generate(ctx context.Context, in GenerateInput) (*types.AppState, error) {
	start := g.now()

	resolved, err := ingestion.Resolve(ingestion.Inputs{
		Resume:         in.Resume,
		ResumeText:     in.ResumeText,
		JobDescription: in.JobDescription,
	})
	if err != nil {
		return nil, err
	}
	emitProgress(&in, StepIngestResume, "Inputs resolved", map[string]bool{
		"sample_resume": resolved.UsedSampleResume,
		"sample_job":    resolved.UsedSampleJob,
	})

	c, err := g.run(ctx, &in, resolved)
	if err != nil {
		return nil, err
	}

	now := g.now()
	state := types.NewAppState(g.newID(), now).
		WithResume(resolved.ResumeName).
		WithJobDescription(resolved.JobDescription).
		WithGenerated(c.Parsed, c.Content, now)

	if g.store != nil {
		if err := g.store.SaveSession(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
		if in.OnProgress != nil {
			in.OnProgress(ProgressEvent{Step: StepPersist, Message: "Session saved", SessionID: state.ID.String()})
		}
	}

	g.logger.WithFields(logrus.Fields{
		"session_id":  state.ID.String(),
		"duration":    g.now().Sub(start),
		"sample_used": resolved.UsedSampleResume || resolved.UsedSampleJob,
	}).Info("generation cycle completed")
	return &state, nil
}

// run extracts and synthesizes, consulting the cache first
func (g *Generator) run(ctx context.Context, in *GenerateInput, resolved *ingestion.Resolved) (*cycle, error) {
	key := cache.Key("generate", resolved.ResumeText, resolved.JobDescription)
	if g.cache != nil {
		var cached cycle
		if g.cache.Get(ctx, key, &cached) {
			g.logger.WithField("key", key).Debug("generation served from cache")
			emitProgress(in, StepExtractResume, "Resume parsed (cached)", cached.Parsed)
			emitProgress(in, StepExtractSignals, "Job signals extracted (cached)", cached.Signals)
			emitProgress(in, StepSynthesize, "Content generated (cached)", nil)
			return &cached, nil
		}
	}

	parsed := parsing.ExtractResume(resolved.ResumeText)
	emitProgress(in, StepExtractResume, "Resume parsed", parsed)

	signals := parsing.ExtractJobSignals(resolved.JobDescription)
	emitProgress(in, StepExtractSignals, fmt.Sprintf("Found %d keywords", len(signals.Keywords)), signals)

	content := synthesis.Synthesize(parsed, signals)
	emitProgress(in, StepSynthesize, fmt.Sprintf("Generated %d interview questions", len(content.InterviewQuestions)), nil)

	if err := validateArtifacts(parsed, signals, content); err != nil {
		return nil, err
	}

	c := &cycle{Parsed: parsed, Signals: signals, Content: content}
	if g.cache != nil {
		g.cache.Set(ctx, key, c)
	}
	return c, nil
}

// validateArtifacts checks every generated artifact against its JSON schema
func validateArtifacts(parsed types.ParsedResume, signals types.JobSignals, content types.GeneratedContent) error {
	checks := []struct {
		schema string
		value  any
	}{
		{artifactschemas.ParsedResume, parsed},
		{artifactschemas.JobSignals, signals},
		{artifactschemas.TailoredResume, content.TailoredResume},
		{artifactschemas.InterviewQuestions, content.InterviewQuestions},
	}
	for _, check := range checks {
		if err := schemas.ValidateArtifact(check.schema, check.value); err != nil {
			return fmt.Errorf("generated %s failed validation: %w", check.schema, err)
		}
	}
	return nil
}
