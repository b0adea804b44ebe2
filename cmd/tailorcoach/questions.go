package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/observability"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/parsing"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/synthesis"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the interview questions generated for a resume",
	Long: `Print the interview question catalog with model answers drawn from the resume.
Without --resume the built-in sample resume is used.`,
	RunE: runQuestions,
}

var (
	questionsResume string
	questionsText   string
	questionsJSON   bool
	questionsOut    string
)

func init() {
	questionsCmd.Flags().StringVarP(&questionsResume, "resume", "r", "", "Path to resume file (default: sample resume)")
	questionsCmd.Flags().StringVar(&questionsText, "text", "", "Resume text used when the file is a PDF or Word document")
	questionsCmd.Flags().BoolVar(&questionsJSON, "json", false, "Print the questions as JSON")
	questionsCmd.Flags().StringVarP(&questionsOut, "out", "o", "", "Write the questions JSON to this file")

	rootCmd.AddCommand(questionsCmd)
}

// loadResumeText reads a resume file the way an upload is read; an empty path selects the sample resume
func loadResumeText(path, fallbackText string) (string, error) {
	if path == "" {
		if fallbackText != "" {
			return fallbackText, nil
		}
		return ingestion.SampleResume, nil
	}
	doc, err := ingestion.ReadDocument(path)
	if err != nil {
		return "", err
	}
	if err := ingestion.ValidateDocument(doc); err != nil {
		return "", err
	}
	return ingestion.DecodeResume(doc, fallbackText), nil
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	text, err := loadResumeText(questionsResume, questionsText)
	if err != nil {
		return err
	}
	questions := synthesis.InterviewQuestions(parsing.ExtractResume(text))

	if questionsOut != "" {
		if err := writeQuestions(questionsOut, questions); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", questionsOut)
		return nil
	}
	if questionsJSON {
		return writeJSON(cmd, "", questions)
	}

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintQuestions(questions)
	for _, q := range questions {
		_, _ = fmt.Fprintf(out, "\nQ%d. %s\n   %s\n", q.ID, q.Question, q.ModelAnswer)
	}
	return nil
}
