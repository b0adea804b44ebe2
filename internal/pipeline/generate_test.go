package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/cache"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/db"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

const (
	testResume = "Jane Doe\nEmail: jane@x.com\nSkills: React, Node.js\nEngineer - Acme Corp"
	testJob    = "We are hiring a Backend Engineer with 5+ years experience in Python, Docker."
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func fixedClock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

type failingStore struct {
	db.Store
}

func (failingStore) SaveSession(context.Context, types.AppState) error {
	return errors.New("disk full")
}

func TestGenerate(t *testing.T) {
	store := db.NewMemoryStore()
	g := NewGenerator(WithStore(store), WithLogger(quietLogger()), WithClock(fixedClock()))

	var steps []string
	state, err := g.Generate(context.Background(), GenerateInput{
		ResumeText:     testResume,
		JobDescription: testJob,
		OnProgress: func(e ProgressEvent) {
			steps = append(steps, e.Step)
		},
	})

	require.NoError(t, err)
	require.NotNil(t, state)
	assert.NotEqual(t, uuid.Nil, state.ID)
	assert.True(t, state.Generated())
	assert.Equal(t, testJob, state.JobDescription)
	assert.Equal(t, "Jane Doe", state.ParsedResume.Name)
	assert.Equal(t, []string{"React", "Node.js"}, state.ParsedResume.Skills)
	assert.Contains(t, state.TailoredResume.Keywords, "Python")
	assert.Contains(t, state.CoverLetter, "Backend Engineer")
	assert.Len(t, state.InterviewQuestions, 10)
	assert.Equal(t, fixedClock()(), state.UpdatedAt)

	assert.Equal(t, []string{StepIngestResume, StepExtractResume, StepExtractSignals, StepSynthesize, StepPersist}, steps)

	saved, err := store.GetSession(context.Background(), state.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, state.CoverLetter, saved.CoverLetter)
}

func TestGenerate_SamplesFillMissingInput(t *testing.T) {
	g := NewGenerator(WithLogger(quietLogger()))

	tests := []struct {
		name           string
		input          GenerateInput
		wantResumeName string
		wantJob        string
	}{
		{
			name:           "missing resume",
			input:          GenerateInput{JobDescription: testJob},
			wantResumeName: "sample_resume.txt",
			wantJob:        testJob,
		},
		{
			name:    "missing job",
			input:   GenerateInput{ResumeText: testResume},
			wantJob: ingestion.SampleJobDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := g.Generate(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantResumeName, state.ResumeName)
			assert.Equal(t, tt.wantJob, state.JobDescription)
			assert.True(t, state.Generated())
		})
	}
}

func TestGenerate_MissingBothInputs(t *testing.T) {
	g := NewGenerator(WithLogger(quietLogger()))

	state, err := g.Generate(context.Background(), GenerateInput{})

	assert.Nil(t, state)
	assert.ErrorIs(t, err, ingestion.ErrMissingInput)
}

func TestGenerate_PDFUploadUsesPlaceholder(t *testing.T) {
	g := NewGenerator(WithLogger(quietLogger()))
	doc := ingestion.NewDocument("resume.pdf", ingestion.ContentTypePDF, []byte("%PDF-1.4"))

	state, err := g.Generate(context.Background(), GenerateInput{Resume: doc, JobDescription: testJob})

	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", state.ResumeName)
	assert.Equal(t, ingestion.PDFPlaceholder, state.ParsedResume.RawContent)
}

func TestGenerate_RejectsUnsupportedUpload(t *testing.T) {
	g := NewGenerator(WithLogger(quietLogger()))
	doc := ingestion.NewDocument("photo.png", "image/png", []byte{0x89, 'P', 'N', 'G'})

	_, err := g.Generate(context.Background(), GenerateInput{Resume: doc, JobDescription: testJob})

	var docErr *ingestion.DocumentError
	assert.ErrorAs(t, err, &docErr)
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator(WithLogger(quietLogger()))
	ctx := context.Background()
	in := GenerateInput{ResumeText: testResume, JobDescription: testJob}

	first, err := g.Generate(ctx, in)
	require.NoError(t, err)
	second, err := g.Generate(ctx, in)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "each cycle produces a new snapshot")
	assert.Equal(t, first.Content(), second.Content())
}

func TestGenerate_CacheHit(t *testing.T) {
	c := cache.New(context.Background(), cache.Options{TTL: time.Minute, Logger: quietLogger()})
	t.Cleanup(func() { _ = c.Close() })
	g := NewGenerator(WithCache(c), WithLogger(quietLogger()))
	ctx := context.Background()
	in := GenerateInput{ResumeText: testResume, JobDescription: testJob}

	uncached, err := g.Generate(ctx, in)
	require.NoError(t, err)

	var messages []string
	in.OnProgress = func(e ProgressEvent) { messages = append(messages, e.Message) }
	cached, err := g.Generate(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, uncached.Content(), cached.Content())
	assert.Equal(t, *uncached.ParsedResume, *cached.ParsedResume)
	assert.Equal(t, int64(1), c.Stats().Hits)
	assert.Contains(t, messages, "Resume parsed (cached)")
}

func TestGenerate_CacheSeparatesInputBoundaries(t *testing.T) {
	c := cache.New(context.Background(), cache.Options{TTL: time.Minute, Logger: quietLogger()})
	t.Cleanup(func() { _ = c.Close() })
	g := NewGenerator(WithCache(c), WithLogger(quietLogger()))
	ctx := context.Background()

	first := GenerateInput{
		ResumeText:     "Jane Doe\nEmail: jane@x.com|Phone 555",
		JobDescription: "We are hiring a Backend Engineer with 5+ years experience in Python, Docker.",
	}
	second := GenerateInput{
		ResumeText:     "Jane Doe\nEmail: jane@x.com",
		JobDescription: "Phone 555|We are hiring a Backend Engineer with 5+ years experience in Python, Docker.",
	}

	a, err := g.Generate(ctx, first)
	require.NoError(t, err)
	b, err := g.Generate(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, first.ResumeText, a.ParsedResume.RawContent)
	assert.Equal(t, second.ResumeText, b.ParsedResume.RawContent)
	assert.Equal(t, int64(0), c.Stats().Hits)
}

func TestGenerate_PersistFailure(t *testing.T) {
	g := NewGenerator(WithStore(failingStore{}), WithLogger(quietLogger()))

	state, err := g.Generate(context.Background(), GenerateInput{ResumeText: testResume, JobDescription: testJob})

	assert.Nil(t, state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestGenerateBatch(t *testing.T) {
	store := db.NewMemoryStore()
	g := NewGenerator(WithStore(store), WithLogger(quietLogger()))
	jobs := []string{
		"We are hiring a Frontend Engineer to build React apps.",
		"We are hiring a Data Analyst for SQL reporting.",
		"We are hiring a DevOps Engineer. Must know Kubernetes and AWS.",
	}

	results, err := g.GenerateBatch(context.Background(), nil, testResume, jobs, 2)

	require.NoError(t, err)
	require.Len(t, results, 3)
	ids := map[uuid.UUID]bool{}
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, jobs[i], r.State.JobDescription)
		ids[r.State.ID] = true
	}
	assert.Len(t, ids, 3)

	summaries, err := store.ListSessions(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, summaries, 3)
}

func TestGenerateBatch_NoJobs(t *testing.T) {
	g := NewGenerator(WithLogger(quietLogger()))
	_, err := g.GenerateBatch(context.Background(), nil, testResume, nil, 0)
	assert.ErrorIs(t, err, ingestion.ErrMissingInput)
}

func TestGenerateBatch_StopsOnFailure(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	store := &countingStore{Store: db.NewMemoryStore(), onSave: func() error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return errors.New("boom")
		}
		return nil
	}}
	g := NewGenerator(WithStore(store), WithLogger(quietLogger()))

	results, err := g.GenerateBatch(context.Background(), nil, testResume, []string{testJob, testJob, testJob}, 1)

	assert.Nil(t, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

type countingStore struct {
	db.Store
	onSave func() error
}

func (s *countingStore) SaveSession(ctx context.Context, state types.AppState) error {
	if err := s.onSave(); err != nil {
		return err
	}
	return s.Store.SaveSession(ctx, state)
}
