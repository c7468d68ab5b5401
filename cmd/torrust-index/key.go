package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/torrust-index/internal/model"
	"github.com/nao1215/torrust-index/internal/tracker"
)

// NewKeyCmd creates the key command group.
func NewKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage tracker keys of users",
	}
	cmd.AddCommand(newKeyIssueCmd())
	cmd.AddCommand(newKeyShowCmd())
	return cmd
}

func newKeyIssueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "issue <username>",
		Short: "Give a user a tracker key",
		Long: `Issue prints the user's tracker key. A key that is still valid for more
than a week is reused; otherwise a new key is requested from the tracker
and stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				user, err := lookupUser(ctx, a.db, args[0])
				if err != nil {
					return err
				}
				client, err := a.trackerClient()
				if err != nil {
					return err
				}

				issuer := tracker.NewKeyIssuer(client, a.db, a.cfg.KeyTTL, a.logger)
				key, created, err := issuer.Issue(ctx, user.UserID)
				if err != nil {
					return err
				}

				status := "existing"
				if created {
					status = "new"
				}
				writeKey(cmd.OutOrStdout(), key, status)
				return nil
			})
		},
	}
}

func newKeyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <username>",
		Short: "Show the user's valid tracker key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				user, err := lookupUser(ctx, a.db, args[0])
				if err != nil {
					return err
				}
				key, err := a.db.GetValidTrackerKey(ctx, user.UserID)
				if err != nil {
					return err
				}
				if key == nil {
					return fmt.Errorf("user %s has no tracker key valid for more than a week", user.Username)
				}
				writeKey(cmd.OutOrStdout(), *key, "existing")
				return nil
			})
		},
	}
}

// writeKey prints a tracker key and its expiry.
func writeKey(w io.Writer, key model.TrackerKey, status string) {
	fmt.Fprintf(w, "Key:         %s (%s)\n", key.Key, status)
	fmt.Fprintf(w, "Valid until: %s\n", key.ValidUntil.UTC().Format(time.RFC3339))
}
