package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

// execute runs the root command in process and returns what it wrote to stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so earlier runs do not leak into the next one
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeTemp writes content to name inside a fresh temp directory and returns its path
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func sampleResumeFile(t *testing.T) string {
	return writeTemp(t, "resume.txt", ingestion.SampleResume)
}

func sampleJobFile(t *testing.T) string {
	return writeTemp(t, "job.txt", ingestion.SampleJobDescription)
}

func countSessions(t *testing.T, out string) int {
	t.Helper()
	var sessions []types.SessionSummary
	require.NoError(t, json.Unmarshal([]byte(out), &sessions))
	return len(sessions)
}

const backendPostingHTML = `<html><body>
<nav>Careers home</nav>
<div class="job-description">
<h1>Senior Backend Engineer</h1>
<p>Required: 5+ years of Go and PostgreSQL experience.</p>
<p>You must be comfortable with Docker and Kubernetes.</p>
</div>
</body></html>`

// jobPostingServer serves a job posting at /jobs/ and 404 elsewhere
func jobPostingServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /jobs/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(backendPostingHTML))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}
