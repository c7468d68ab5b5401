package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for torrust-index.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "torrust-index",
		Short: "Manage the database of a torrent index",
		Long: `torrust-index manages the SQLite database behind a torrent index.

It stores users, categories, torrents, tracker keys, and content pages,
and keeps seeder and leecher counts in sync with the tracker.

Configuration is read from .torrust-index (current or home directory),
then TORRUST_INDEX_* environment variables, then command-line flags.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .torrust-index in current or home directory)")
	cmd.PersistentFlags().StringP("database", "d", "",
		"Database URL or path (default: torrust-index.db in the XDG data directory)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", "", "Log format: text or json (default: text)")

	// Add subcommands
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewUserCmd())
	cmd.AddCommand(NewCategoryCmd())
	cmd.AddCommand(NewTorrentCmd())
	cmd.AddCommand(NewKeyCmd())
	cmd.AddCommand(NewPageCmd())
	cmd.AddCommand(NewTrackerCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command. Interrupt and SIGTERM cancel the
// command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
