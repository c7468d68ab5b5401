package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database and apply schema migrations",
		Long: `Migrate opens the database, creating it if needed, and applies every
pending schema migration. Running it again is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				applied, err := a.db.AppliedMigrations(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database: %s\n", a.db.Path())
				for _, name := range applied {
					fmt.Fprintf(out, "  applied %s\n", name)
				}
				return nil
			})
		},
	}
}
