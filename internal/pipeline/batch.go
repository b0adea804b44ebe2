package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

// DefaultBatchLimit bounds concurrent cycles in GenerateBatch
const DefaultBatchLimit = 4

// BatchResult pairs a job description with the snapshot generated for it
type BatchResult struct {
	Index int
	State *types.AppState
}

// GenerateBatch tailors one resume to several job descriptions.
// Each cycle is independent and runs concurrently, at most limit at a time.
// Results keep the order of jobs; the first failure cancels the rest.
func (g *Generator) GenerateBatch(ctx context.Context, resume *ingestion.Document, resumeText string, jobs []string, limit int) ([]BatchResult, error) {
	if len(jobs) == 0 {
		return nil, ingestion.ErrMissingInput
	}
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	results := make([]BatchResult, len(jobs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, job := range jobs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			state, err := g.Generate(egCtx, GenerateInput{
				Resume:         resume,
				ResumeText:     resumeText,
				JobDescription: job,
			})
			if err != nil {
				return fmt.Errorf("job %d: %w", i+1, err)
			}
			results[i] = BatchResult{Index: i, State: state}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
