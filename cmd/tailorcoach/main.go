// Package main provides the entry point for the TailorCoach CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tailorcoach",
	Short: "Resume tailoring and interview practice",
	Long: `TailorCoach tailors a resume to a job description, drafts a cover letter, generates interview
questions with model answers and scores practice answers. Run it from the command line or start the REST API with "serve".`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
