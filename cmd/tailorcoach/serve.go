package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/cache"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/config"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/observability"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for tailoring resumes and practicing interview answers.

Settings are read from the environment (SESSION_SECRET is required); --port overrides PORT.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load server config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	ctx := context.Background()
	logger := observability.NewLogger(cfg.LogLevel, os.Stderr, true)

	store, err := openStore(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer store.Close()

	c := cache.New(ctx, cache.Options{
		RedisURL: cfg.RedisURL,
		TTL:      cfg.CacheTTL,
		Logger:   logger,
	})
	defer c.Close()

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		Store:      store,
		Cache:      c,
		Session:    cfg.Session,
		EvalDelay:  cfg.EvalDelay,
		ChromePath: cfg.ChromePath,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
