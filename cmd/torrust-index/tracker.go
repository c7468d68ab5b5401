package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/nao1215/torrust-index/internal/tracker"
)

// NewTrackerCmd creates the tracker command group.
func NewTrackerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Synchronize with the tracker",
	}
	cmd.AddCommand(newTrackerRefreshCmd())
	return cmd
}

func newTrackerRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Copy seeder and leecher counts from the tracker",
		Long: `Refresh asks the tracker for the statistics of every stored torrent and
writes the seeder and leecher counts back. Torrents the tracker does not
know are skipped. Press Ctrl+C to stop early.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := outputWriter(cmd)
			if err != nil {
				return err
			}
			concurrency, err := cmd.Flags().GetInt("concurrency")
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				client, err := a.trackerClient()
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("concurrency") {
					concurrency = a.cfg.RefreshConcurrency
				}

				refresher := tracker.NewRefresher(client, a.db,
					tracker.WithConcurrency(concurrency),
					tracker.WithRefreshLogger(a.logger),
				)
				summary, err := refresher.Refresh(ctx)
				if err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				if _, werr := w.WriteRefreshSummary(summary); werr != nil {
					return werr
				}
				return err
			})
		},
	}

	cmd.Flags().IntP("concurrency", "n", 0, "Concurrent tracker requests (default: from configuration)")
	addOutputFlags(cmd)
	return cmd
}
