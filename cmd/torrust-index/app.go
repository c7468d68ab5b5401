package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/torrust-index/internal/config"
	"github.com/nao1215/torrust-index/internal/database"
	"github.com/nao1215/torrust-index/internal/log"
	"github.com/nao1215/torrust-index/internal/report"
	"github.com/nao1215/torrust-index/internal/tracker"
)

// errNoTracker is returned by commands that need the tracker API when none is configured.
var errNoTracker = errors.New("no tracker configured: set tracker.api_url or TORRUST_INDEX_TRACKER_API_URL")

// app holds what a command needs once configuration has been resolved.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *database.Database
}

// buildConfig resolves the configuration: defaults, config file,
// environment, then global flags that were set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("database") {
		if cfg.DatabaseURL, err = cmd.Flags().GetString("database"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("verbose") {
		if cfg.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("log-format") {
		if cfg.LogFormat, err = cmd.Flags().GetString("log-format"); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// setupLogger creates the secure logger for cfg and makes it the default.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogFormat)
	slog.SetDefault(logger)
	return logger
}

// openDatabase opens the configured database and applies pending migrations.
func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*database.Database, error) {
	db, err := database.Open(ctx, cfg.DatabaseURL, database.DefaultOptions())
	if err != nil {
		return nil, err
	}
	logger.Debug("database opened", "path", db.Path())
	return db, nil
}

// withApp resolves configuration, opens the database, and runs fn.
// The database is closed when fn returns.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Warn("failed to close database", "error", cerr)
		}
	}()

	return fn(ctx, &app{cfg: cfg, logger: logger, db: db})
}

// trackerClient creates a tracker API client from the configuration.
func (a *app) trackerClient() (*tracker.Client, error) {
	if !a.cfg.HasTracker() {
		return nil, errNoTracker
	}
	return tracker.NewClient(a.cfg.TrackerAPIURL, a.cfg.TrackerToken,
		tracker.WithTimeout(a.cfg.TrackerTimeout),
		tracker.WithProxy(a.cfg.TrackerProxy),
	)
}

// addOutputFlags registers --json and --markdown on cmd.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown (mutually exclusive with --json)")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")
}

// outputWriter returns the report writer selected by the output flags.
func outputWriter(cmd *cobra.Command) (report.Writer, error) {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	format := report.FormatText
	switch {
	case asJSON:
		format = report.FormatJSON
	case asMarkdown:
		format = report.FormatMarkdown
	}
	return report.NewWriter(cmd.OutOrStdout(), format)
}
