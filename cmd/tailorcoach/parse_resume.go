package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/observability"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/parsing"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/schemas"
	artifactschemas "github.com/Vijay417-sys/AI-Resume-Tailor/schemas"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse a resume file into structured ParsedResume JSON",
	Long: `Extract name, contact details, skills, roles and education from a resume file.

Text files are read directly. PDF and Word documents are not decoded; --text supplies their content instead.`,
	RunE: runParseResume,
}

var (
	parseResumeIn      string
	parseResumeOut     string
	parseResumeText    string
	parseResumeVerbose bool
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeIn, "in", "i", "", "Path to resume file (required)")
	parseResumeCmd.Flags().StringVarP(&parseResumeOut, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseResumeCmd.Flags().StringVar(&parseResumeText, "text", "", "Resume text used when the file is a PDF or Word document")
	parseResumeCmd.Flags().BoolVarP(&parseResumeVerbose, "verbose", "v", false, "Print a summary of the parsed fields")

	_ = parseResumeCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	doc, err := ingestion.ReadDocument(parseResumeIn)
	if err != nil {
		return err
	}
	if err := ingestion.ValidateDocument(doc); err != nil {
		return err
	}

	parsed := parsing.ExtractResume(ingestion.DecodeResume(doc, parseResumeText))
	if err := schemas.ValidateArtifact(artifactschemas.ParsedResume, parsed); err != nil {
		return fmt.Errorf("parsed resume does not validate against schema: %w", err)
	}

	if parseResumeVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintParsedResume(&parsed)
	}
	return writeJSON(cmd, parseResumeOut, parsed)
}
