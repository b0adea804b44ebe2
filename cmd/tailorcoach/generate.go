package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/cache"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/config"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/observability"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/pipeline"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/rendering"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Tailor a resume to one or more job descriptions",
	Long: `Run a generation cycle per job description: parse the resume, extract job signals, and write the
tailored resume, a cover letter and interview questions to --out.

Jobs come from files (--job) and job posting URLs (--job-url), both repeatable. A missing resume or
job description is replaced by the built-in sample. With several jobs each one gets its own
subdirectory and the cycles run concurrently.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerate,
}

var (
	genConfigPath  string
	genResume      string
	genJobs        []string
	genJobURLs     []string
	genOutDir      string
	genFormat      string
	genTemplate    string
	genSQLitePath  string
	genDatabaseURL string
	genRedisURL    string
	genConcurrency int
	genUseBrowser  bool
	genVerbose     bool
)

func init() {
	// Config file flag (processed first)
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCmd.Flags().StringVarP(&genResume, "resume", "r", "", "Path to resume file (.txt, .pdf or .docx)")
	generateCmd.Flags().StringArrayVarP(&genJobs, "job", "j", nil, "Path to job description file (repeatable)")
	generateCmd.Flags().StringArrayVar(&genJobURLs, "job-url", nil, "Job posting URL to fetch (repeatable)")
	generateCmd.Flags().StringVarP(&genOutDir, "out", "o", "", "Output directory (default: output)")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "", "Resume format: text, latex or pdf (default: text)")
	generateCmd.Flags().StringVarP(&genTemplate, "template", "t", "", "Path to LaTeX template (latex format only)")
	generateCmd.Flags().StringVar(&genSQLitePath, "sqlite", "", "Save sessions to this SQLite database")
	generateCmd.Flags().StringVar(&genDatabaseURL, "db-url", "", "Save sessions to this PostgreSQL database")
	generateCmd.Flags().StringVar(&genRedisURL, "redis-url", "", "Redis URL for the shared generation cache")
	generateCmd.Flags().IntVar(&genConcurrency, "concurrency", 0, "Maximum generation cycles run at once")
	generateCmd.Flags().BoolVar(&genUseBrowser, "use-browser", false, "Render job URLs in headless Chrome when plain HTTP yields too little text")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(generateCmd)
}

// generateDefaults fill whatever neither the config file nor the flags set
var generateDefaults = config.Config{
	OutDir:      "output",
	Format:      config.FormatText,
	Concurrency: pipeline.DefaultBatchLimit,
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	// Step 1: Load config file if provided
	var cfg config.Config
	if genConfigPath != "" {
		loaded, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Step 2: Apply CLI overrides; only flags that were explicitly set win
	flags := cmd.Flags()
	if flags.Changed("resume") {
		cfg.Resume = genResume
	}
	if flags.Changed("job") {
		cfg.Jobs = genJobs
	}
	if flags.Changed("job-url") {
		cfg.JobURLs = genJobURLs
	}
	if flags.Changed("out") {
		cfg.OutDir = genOutDir
	}
	if flags.Changed("format") {
		cfg.Format = genFormat
	}
	if flags.Changed("template") {
		cfg.Template = genTemplate
	}
	if flags.Changed("sqlite") {
		cfg.SQLitePath = genSQLitePath
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = genDatabaseURL
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = genRedisURL
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = genConcurrency
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = genUseBrowser
	}
	if flags.Changed("verbose") {
		cfg.Verbose = genVerbose
	}

	// Step 3: Apply defaults for unset values and validate the result
	cfg = cfg.MergeWithDefaults(generateDefaults)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Verbose && genConfigPath != "" {
		_, _ = fmt.Fprintf(out, "Loaded config from: %s\n", genConfigPath)
	}

	level := "warn"
	if cfg.Verbose {
		level = "debug"
	}
	logger := observability.NewLogger(level, cmd.ErrOrStderr(), false)

	c := cache.New(ctx, cache.Options{RedisURL: cfg.RedisURL, TTL: config.DefaultCacheTTL, Logger: logger})
	defer c.Close()

	// Step 4: Read inputs
	var resume *ingestion.Document
	if cfg.Resume != "" {
		doc, err := ingestion.ReadDocument(cfg.Resume)
		if err != nil {
			return err
		}
		resume = doc
	}
	jobs := make([]string, 0, len(cfg.Jobs))
	for _, path := range cfg.Jobs {
		text, _, err := ingestion.IngestFromFile(path)
		if err != nil {
			return err
		}
		jobs = append(jobs, text)
	}
	if len(cfg.JobURLs) > 0 {
		postings, err := fetchJobPostings(ctx, newFetcher(c, cfg.UseBrowser, logger), cfg.JobURLs)
		if err != nil {
			return err
		}
		jobs = append(jobs, postings...)
	}
	if len(jobs) == 0 {
		// An empty description selects the sample job
		jobs = append(jobs, "")
	}

	// Step 5: Run the cycles
	store, err := openStore(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer store.Close()

	generator := pipeline.NewGenerator(
		pipeline.WithStore(store),
		pipeline.WithCache(c),
		pipeline.WithLogger(logger),
	)
	results, err := generator.GenerateBatch(ctx, resume, "", jobs, cfg.Concurrency)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	// Step 6: Write artifacts
	pdf := rendering.NewPDFRenderer("")
	printer := observability.NewPrinter(out)
	for _, result := range results {
		dir := cfg.OutDir
		if len(results) > 1 {
			dir = filepath.Join(cfg.OutDir, fmt.Sprintf("job-%d", result.Index+1))
		}
		if err := writeArtifacts(ctx, dir, cfg, pdf, result.State); err != nil {
			return err
		}

		if cfg.Verbose {
			printer.PrintTailoredResume(result.State.TailoredResume)
			printer.PrintQuestions(result.State.InterviewQuestions)
		}
		_, _ = fmt.Fprintf(out, "Session %s: %s\n", result.State.ID, dir)
	}

	if cfg.SQLitePath != "" || cfg.DatabaseURL != "" {
		_, _ = fmt.Fprintf(out, "Saved %d session(s)\n", len(results))
	}
	return nil
}

// writeArtifacts writes the resume in the configured format, the cover letter and the questions to dir
func writeArtifacts(ctx context.Context, dir string, cfg config.Config, pdf *rendering.PDFRenderer, state *types.AppState) error {
	resume := *state.TailoredResume

	var (
		name string
		data []byte
	)
	switch cfg.Format {
	case config.FormatLaTeX:
		tex, err := rendering.RenderLaTeX(resume, cfg.Template)
		if err != nil {
			return err
		}
		name, data = rendering.ResumeLaTeXFile, []byte(tex)
	case config.FormatPDF:
		b, err := pdf.RenderResumePDF(ctx, resume)
		if err != nil {
			return err
		}
		name, data = rendering.ResumePDFFile, b
	default:
		name, data = rendering.ResumeTextFile, []byte(rendering.ResumeText(resume))
	}

	if err := writeFile(filepath.Join(dir, name), data); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, rendering.CoverLetterTextFile), []byte(rendering.CoverLetterText(state.CoverLetter))); err != nil {
		return err
	}
	return writeQuestions(filepath.Join(dir, rendering.QuestionsFile), state.InterviewQuestions)
}
