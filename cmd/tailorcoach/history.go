package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent tailoring sessions",
	Long:  "List the most recently updated sessions saved by generate or practice, newest first.",
	RunE:  runHistory,
}

var (
	historySQLitePath  string
	historyDatabaseURL string
	historyLimit       int
	historyJSON        bool
)

func init() {
	historyCmd.Flags().StringVar(&historySQLitePath, "sqlite", "", "SQLite session database")
	historyCmd.Flags().StringVar(&historyDatabaseURL, "db-url", "", "PostgreSQL session database")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", db.DefaultListLimit, "Maximum sessions to list")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print the sessions as JSON")

	historyCmd.MarkFlagsOneRequired("sqlite", "db-url")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, err := openStore(ctx, historyDatabaseURL, historySQLitePath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.ListSessions(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if historyJSON {
		return writeJSON(cmd, "", sessions)
	}
	if len(sessions) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No sessions found")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tRESUME\tUPDATED")
	for _, s := range sessions {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, orDash(s.Name), orDash(s.ResumeName), s.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
