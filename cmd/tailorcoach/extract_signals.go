package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/observability"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/parsing"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/schemas"
	artifactschemas "github.com/Vijay417-sys/AI-Resume-Tailor/schemas"
)

var extractSignalsCmd = &cobra.Command{
	Use:   "extract-signals",
	Short: "Extract keywords and requirements from a job description",
	Long: `Read a job description (plain text or HTML file, or a job posting URL) and write its JobSignals JSON:
matched keywords and requirement sentences.`,
	RunE: runExtractSignals,
}

var (
	signalsIn         string
	signalsURL        string
	signalsOut        string
	signalsUseBrowser bool
	signalsVerbose    bool
)

func init() {
	extractSignalsCmd.Flags().StringVarP(&signalsIn, "in", "i", "", "Path to job description file")
	extractSignalsCmd.Flags().StringVarP(&signalsURL, "url", "u", "", "Job posting URL to fetch")
	extractSignalsCmd.Flags().StringVarP(&signalsOut, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractSignalsCmd.Flags().BoolVar(&signalsUseBrowser, "use-browser", false, "Render the URL in headless Chrome when plain HTTP yields too little text")
	extractSignalsCmd.Flags().BoolVarP(&signalsVerbose, "verbose", "v", false, "Print a summary of the extracted signals")

	extractSignalsCmd.MarkFlagsOneRequired("in", "url")
	extractSignalsCmd.MarkFlagsMutuallyExclusive("in", "url")
	rootCmd.AddCommand(extractSignalsCmd)
}

func runExtractSignals(cmd *cobra.Command, _ []string) error {
	var text string
	if signalsURL != "" {
		level := "warn"
		if signalsVerbose {
			level = "debug"
		}
		fetcher := newFetcher(nil, signalsUseBrowser, observability.NewLogger(level, cmd.ErrOrStderr(), false))
		postings, err := fetchJobPostings(context.Background(), fetcher, []string{signalsURL})
		if err != nil {
			return err
		}
		text = postings[0]
	} else {
		ingested, meta, err := ingestion.IngestFromFile(signalsIn)
		if err != nil {
			return err
		}
		if signalsVerbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Ingested %s\n", meta)
		}
		text = ingested
	}

	signals := parsing.ExtractJobSignals(text)
	if err := schemas.ValidateArtifact(artifactschemas.JobSignals, signals); err != nil {
		return fmt.Errorf("job signals do not validate against schema: %w", err)
	}

	if signalsVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintJobSignals(&signals)
	}
	return writeJSON(cmd, signalsOut, signals)
}
