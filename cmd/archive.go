package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AnnikaCodes/tumblr-archiver/internal/archive"
	"github.com/AnnikaCodes/tumblr-archiver/internal/clock/system"
	"github.com/AnnikaCodes/tumblr-archiver/internal/config"
	"github.com/AnnikaCodes/tumblr-archiver/internal/logging"
	"github.com/AnnikaCodes/tumblr-archiver/internal/metrics"
	"github.com/AnnikaCodes/tumblr-archiver/internal/storage/sqlite"
	"github.com/AnnikaCodes/tumblr-archiver/internal/tumblr"
)

// newArchiveCmd creates and configures the 'archive' subcommand.
// It wires the store, API client, and archiver together and runs one crawl
// per requested blog.
func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <blog> [blog...]",
		Short: "Archive the complete post history of one or more blogs",
		Long: `Fetches every post of the named blogs from the tumblr API, page by page,
and writes blogs, posts, tags, and reblog trail items to the configured
SQLite database. Each blog is crawled independently; one blog failing does
not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runArchiveCommand,
	}
	return cmd
}

func runArchiveCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := sqlite.New(cfg.Database.Location, cfg.Database.Schema, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("Failed to close store", zap.Error(cerr))
		}
	}()

	if cfg.Metrics.Addr != "" {
		go func() {
			logger.Info("Starting metrics server", zap.String("addr", cfg.Metrics.Addr))
			if serr := http.ListenAndServe(cfg.Metrics.Addr, metrics.Handler()); serr != nil {
				logger.Error("Metrics server failed", zap.Error(serr))
			}
		}()
	}

	client := tumblr.NewClient(cfg.API.BaseURL, cfg.API.Key, cfg.API.Timeout, logger)

	archiver := archive.New(client, store, system.New(), archive.Config{
		Concurrency: cfg.Crawl.Concurrency,
		ExactTotals: cfg.Crawl.ExactTotals,
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
	}, logger)

	archiver.Run(cmd.Context(), args)

	logger.Info("Archive run finished", zap.Int("blogs", len(args)))
	return nil
}
