package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/torrust-index/internal/model"
)

// NewPageCmd creates the page command group.
func NewPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage content pages",
	}
	cmd.AddCommand(newPageAddCmd())
	cmd.AddCommand(newPageListCmd())
	cmd.AddCommand(newPageShowCmd())
	return cmd
}

func newPageAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <route>",
		Short: "Create a page",
		Long: `Create a page served under route. Routes are unique and start with "/".

Examples:
  torrust-index page add /about --title "About" --description "What this index is for."`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := cmd.Flags().GetString("title")
			if err != nil {
				return err
			}

			in := model.NewPage{Route: args[0], Title: title}
			if cmd.Flags().Changed("description") {
				description, err := cmd.Flags().GetString("description")
				if err != nil {
					return err
				}
				in.Description = &description
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.db.InsertPage(ctx, in); err != nil {
					return err
				}
				a.logger.Info("page added", "route", args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Added page %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().String("title", "", "Page title (required)")
	cmd.Flags().String("description", "", "Page description")
	_ = cmd.MarkFlagRequired("title") //nolint:errcheck // flag is defined above

	return cmd
}

func newPageListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pages by route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := outputWriter(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				pages, err := a.db.GetPages(ctx)
				if err != nil {
					return err
				}
				_, err = w.WritePages(pages)
				return err
			})
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func newPageShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <route>",
		Short: "Show one page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := outputWriter(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				page, err := a.db.GetPageByRoute(ctx, args[0])
				if err != nil {
					return err
				}
				if page == nil {
					return fmt.Errorf("no page at route %s", args[0])
				}
				_, err = w.WritePage(page)
				return err
			})
		},
	}
	addOutputFlags(cmd)
	return cmd
}
