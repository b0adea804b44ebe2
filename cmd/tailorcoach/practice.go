package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/db"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/evaluation"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/observability"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/pipeline"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Score an answer to one of the generated interview questions",
	Long: `Evaluate a practice answer and print its score, feedback and a suggested answer.

The question comes from a stored session (--session with --sqlite or --db-url) or from a fresh
generation cycle over --resume and --job. The attempt is saved to the store, replacing any earlier
attempt at the same question.`,
	RunE: runPractice,
}

var (
	practiceSession     string
	practiceResume      string
	practiceJob         string
	practiceSQLitePath  string
	practiceDatabaseURL string
	practiceQuestion    int
	practiceAnswer      string
	practiceAnswerFile  string
	practiceDelay       time.Duration
	practiceJSON        bool
)

func init() {
	practiceCmd.Flags().StringVar(&practiceSession, "session", "", "ID of a stored session")
	practiceCmd.Flags().StringVarP(&practiceResume, "resume", "r", "", "Path to resume file (default: sample resume)")
	practiceCmd.Flags().StringVarP(&practiceJob, "job", "j", "", "Path to job description file (default: sample job)")
	practiceCmd.Flags().StringVar(&practiceSQLitePath, "sqlite", "", "SQLite session database")
	practiceCmd.Flags().StringVar(&practiceDatabaseURL, "db-url", "", "PostgreSQL session database")
	practiceCmd.Flags().IntVarP(&practiceQuestion, "question", "q", 0, "Question ID (required)")
	practiceCmd.Flags().StringVarP(&practiceAnswer, "answer", "a", "", "Answer text")
	practiceCmd.Flags().StringVar(&practiceAnswerFile, "answer-file", "", "Read the answer from this file")
	practiceCmd.Flags().DurationVar(&practiceDelay, "delay", 0, "Simulated evaluation latency")
	practiceCmd.Flags().BoolVar(&practiceJSON, "json", false, "Print the attempt as JSON")

	_ = practiceCmd.MarkFlagRequired("question")
	practiceCmd.MarkFlagsMutuallyExclusive("answer", "answer-file")
	practiceCmd.MarkFlagsMutuallyExclusive("session", "resume")
	practiceCmd.MarkFlagsMutuallyExclusive("session", "job")
	rootCmd.AddCommand(practiceCmd)
}

func runPractice(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	answer := practiceAnswer
	if practiceAnswerFile != "" {
		data, err := os.ReadFile(practiceAnswerFile)
		if err != nil {
			return fmt.Errorf("failed to read answer file: %w", err)
		}
		answer = string(data)
	}

	store, err := openStore(ctx, practiceDatabaseURL, practiceSQLitePath)
	if err != nil {
		return err
	}
	defer store.Close()

	logger := observability.NewLogger("warn", cmd.ErrOrStderr(), false)
	state, err := practiceState(ctx, store, logger)
	if err != nil {
		return err
	}

	evaluator := evaluation.New(evaluation.WithDelay(practiceDelay))
	attempt, err := evaluator.Practice(ctx, *state, practiceQuestion, answer)
	if err != nil {
		return err
	}
	if err := store.SavePractice(ctx, state.ID, attempt); err != nil {
		return fmt.Errorf("failed to save practice attempt: %w", err)
	}

	if practiceJSON {
		return writeJSON(cmd, "", attempt)
	}

	out := cmd.OutOrStdout()
	if q, ok := state.Question(practiceQuestion); ok {
		_, _ = fmt.Fprintln(out, q.String())
	}
	observability.NewPrinter(out).PrintPracticeSession(&attempt)
	_, _ = fmt.Fprintf(out, "\nSuggested answer:\n%s\n", attempt.SuggestedAnswer)
	return nil
}

// practiceState loads the stored session, or generates one from the resume and job files
func practiceState(ctx context.Context, store db.Store, logger *logrus.Logger) (*types.AppState, error) {
	if practiceSession != "" {
		if practiceSQLitePath == "" && practiceDatabaseURL == "" {
			return nil, fmt.Errorf("--session requires --sqlite or --db-url")
		}
		id, err := uuid.Parse(practiceSession)
		if err != nil {
			return nil, fmt.Errorf("invalid session id: %w", err)
		}
		state, err := store.GetSession(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		if state == nil {
			return nil, fmt.Errorf("%w: %s", db.ErrSessionNotFound, id)
		}
		return state, nil
	}

	in := pipeline.GenerateInput{JobDescription: ingestion.SampleJobDescription}
	if practiceResume != "" {
		doc, err := ingestion.ReadDocument(practiceResume)
		if err != nil {
			return nil, err
		}
		in.Resume = doc
	} else {
		in.ResumeText = ingestion.SampleResume
	}
	if practiceJob != "" {
		text, _, err := ingestion.IngestFromFile(practiceJob)
		if err != nil {
			return nil, err
		}
		in.JobDescription = text
	}
	return pipeline.NewGenerator(pipeline.WithStore(store), pipeline.WithLogger(logger)).Generate(ctx, in)
}
