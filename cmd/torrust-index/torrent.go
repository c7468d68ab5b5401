package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nao1215/torrust-index/internal/database"
	"github.com/nao1215/torrust-index/internal/model"
)

// NewTorrentCmd creates the torrent command group.
func NewTorrentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "torrent",
		Short: "Manage torrents",
	}
	cmd.AddCommand(newTorrentAddCmd())
	cmd.AddCommand(newTorrentShowCmd())
	cmd.AddCommand(newTorrentListCmd())
	cmd.AddCommand(newTorrentUpdateStatsCmd())
	return cmd
}

func newTorrentAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <info-hash>",
		Short: "Store torrent metadata",
		Long: `Store the metadata of an uploaded torrent. The upload date is now.

Examples:
  torrust-index torrent add 6c5c1a2a9bd50a8a7c7a8de5f68b6d39e5d4a2f1 \
    --uploader alice --title "Debian 12 netinst" --category Linux --size 658505728`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			uploader, err := flags.GetString("uploader")
			if err != nil {
				return err
			}
			title, err := flags.GetString("title")
			if err != nil {
				return err
			}
			categoryName, err := flags.GetString("category")
			if err != nil {
				return err
			}
			description, err := flags.GetString("description")
			if err != nil {
				return err
			}
			size, err := flags.GetInt64("size")
			if err != nil {
				return err
			}
			seeders, err := flags.GetInt64("seeders")
			if err != nil {
				return err
			}
			leechers, err := flags.GetInt64("leechers")
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				category, err := a.db.VerifyCategory(ctx, categoryName)
				if err != nil {
					return err
				}
				if category == nil {
					return fmt.Errorf("category %q does not exist", categoryName)
				}

				id, err := a.db.InsertTorrentAndGetID(ctx, model.NewTorrent{
					Uploader:    uploader,
					InfoHash:    args[0],
					Title:       title,
					CategoryID:  category.CategoryID,
					Description: description,
					FileSize:    size,
					Seeders:     seeders,
					Leechers:    leechers,
				})
				if err != nil {
					return err
				}
				a.logger.Info("torrent added", "torrent_id", id, "info_hash", args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Added torrent %d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().String("uploader", "", "Username of the uploader (required)")
	cmd.Flags().String("title", "", "Torrent title (required)")
	cmd.Flags().String("category", "", "Category name (required)")
	cmd.Flags().String("description", "", "Torrent description")
	cmd.Flags().Int64("size", 0, "Total content size in bytes")
	cmd.Flags().Int64("seeders", 0, "Initial seeder count")
	cmd.Flags().Int64("leechers", 0, "Initial leecher count")
	for _, name := range []string{"uploader", "title", "category"} {
		_ = cmd.MarkFlagRequired(name) //nolint:errcheck // flags are defined above
	}

	return cmd
}

func newTorrentShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id|info-hash>",
		Short: "Show one torrent",
		Long: `Show one torrent. A 40 or 64 character hex argument is treated as an
info hash, anything else as a torrent id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := outputWriter(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				torrent, err := findTorrent(ctx, a.db, args[0])
				if err != nil {
					return err
				}
				_, err = w.WriteTorrent(torrent)
				return err
			})
		},
	}
	addOutputFlags(cmd)
	return cmd
}

// findTorrent looks a torrent up by info hash or id.
func findTorrent(ctx context.Context, db *database.Database, ref string) (*model.TorrentListing, error) {
	if model.IsInfoHash(ref) {
		return db.GetTorrentByInfoHash(ctx, ref)
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is neither a torrent id nor an info hash", ref)
	}
	return db.GetTorrentByID(ctx, id)
}

func newTorrentListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List torrents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := outputWriter(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				torrents, err := a.db.GetTorrents(ctx)
				if err != nil {
					return err
				}
				_, err = w.WriteTorrents(torrents)
				return err
			})
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func newTorrentUpdateStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-stats <info-hash>",
		Short: "Set seeder and leecher counts by hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeders, err := cmd.Flags().GetInt64("seeders")
			if err != nil {
				return err
			}
			leechers, err := cmd.Flags().GetInt64("leechers")
			if err != nil {
				return err
			}
			if seeders < 0 || leechers < 0 {
				return fmt.Errorf("%w: counts must not be negative", database.ErrInvalidInput)
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				n, err := a.db.UpdateTrackerInfo(ctx, args[0], seeders, leechers)
				if err != nil {
					return err
				}
				if n == 0 {
					return fmt.Errorf("%w: %s", database.ErrTorrentNotFound, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %d seeders, %d leechers\n", args[0], seeders, leechers)
				return nil
			})
		},
	}

	cmd.Flags().Int64("seeders", 0, "Seeder count")
	cmd.Flags().Int64("leechers", 0, "Leecher count")
	return cmd
}
