package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewCategoryCmd creates the category command group.
func NewCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage torrent categories",
	}
	cmd.AddCommand(newCategoryAddCmd())
	cmd.AddCommand(newCategoryListCmd())
	cmd.AddCommand(newCategoryVerifyCmd())
	return cmd
}

func newCategoryAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				id, err := a.db.InsertCategory(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (id %d)\n", args[0], id)
				return nil
			})
		},
	}
}

func newCategoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := outputWriter(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				categories, err := a.db.GetCategories(ctx)
				if err != nil {
					return err
				}
				_, err = w.WriteCategories(categories)
				return err
			})
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func newCategoryVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <name>",
		Short: "Check that a category exists",
		Long: `Verify prints the id of the named category and fails if it does not exist.
Names are compared after Unicode normalization.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				category, err := a.db.VerifyCategory(ctx, args[0])
				if err != nil {
					return err
				}
				if category == nil {
					return fmt.Errorf("category %q does not exist", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", category.Name, category.CategoryID)
				return nil
			})
		},
	}
}
