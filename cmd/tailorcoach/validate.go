package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/schemas"
	artifactschemas "github.com/Vijay417-sys/AI-Resume-Tailor/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an artifact JSON file against its schema",
	Long:  "Validate a JSON file written by parse-resume, extract-signals or generate against one of the embedded artifact schemas.",
	RunE:  runValidate,
}

var (
	validateSchema string
	validateIn     string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Schema name: "+strings.Join(artifactschemas.Names, ", "))
	validateCmd.Flags().StringVarP(&validateIn, "in", "i", "", "Path to JSON file (required)")

	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if !slices.Contains(artifactschemas.Names, validateSchema) {
		return fmt.Errorf("unknown schema %q (want one of %s)", validateSchema, strings.Join(artifactschemas.Names, ", "))
	}
	if err := schemas.ValidateArtifactFile(validateSchema, validateIn); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid %s\n", validateIn, validateSchema)
	return nil
}
