package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nao1215/torrust-index/internal/database"
	"github.com/nao1215/torrust-index/internal/model"
)

// NewUserCmd creates the user command group.
func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage index users",
	}
	cmd.AddCommand(newUserAddCmd())
	cmd.AddCommand(newUserShowCmd())
	cmd.AddCommand(newUserDeleteCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Register a user",
		Long: `Register a user with an already-hashed password.

Examples:
  torrust-index user add alice --email alice@example.com --password-hash '$argon2id$...'
  torrust-index user add root --email root@example.com --password-hash '$argon2id$...' --admin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := cmd.Flags().GetString("email")
			if err != nil {
				return err
			}
			hash, err := cmd.Flags().GetString("password-hash")
			if err != nil {
				return err
			}
			admin, err := cmd.Flags().GetBool("admin")
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				id, err := a.db.InsertUser(ctx, model.NewUser{
					Username:      args[0],
					Email:         email,
					PasswordHash:  hash,
					Administrator: admin,
				})
				if err != nil {
					return err
				}
				a.logger.Info("user added", "user_id", id, "username", args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Added user %s (id %d)\n", args[0], id)
				return nil
			})
		},
	}

	cmd.Flags().String("email", "", "Email address (required)")
	cmd.Flags().String("password-hash", "", "Password hash as produced by the index (required)")
	cmd.Flags().Bool("admin", false, "Grant administrator rights")
	_ = cmd.MarkFlagRequired("email")         //nolint:errcheck // flag is defined above
	_ = cmd.MarkFlagRequired("password-hash") //nolint:errcheck // flag is defined above

	return cmd
}

func newUserShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <username>",
		Short: "Show a user by username, email, or id",
		Long: `Show a user. The argument is a username unless --email or --id is given.

Examples:
  torrust-index user show alice
  torrust-index user show --email alice@example.com
  torrust-index user show --id 1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := cmd.Flags().GetString("email")
			if err != nil {
				return err
			}
			id, err := cmd.Flags().GetInt64("id")
			if err != nil {
				return err
			}
			if len(args) == 0 && email == "" && id == 0 {
				return errors.New("specify a username, --email, or --id")
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				var user *model.User
				var err error
				var what string
				switch {
				case email != "":
					what = "email " + email
					user, err = a.db.GetUserWithEmail(ctx, email)
				case id != 0:
					what = "id " + strconv.FormatInt(id, 10)
					user, err = a.db.GetUserByID(ctx, id)
				default:
					what = "username " + args[0]
					user, err = a.db.GetUserWithUsername(ctx, args[0])
				}
				if err != nil {
					return err
				}
				if user == nil {
					return fmt.Errorf("no user with %s", what)
				}
				writeUser(cmd.OutOrStdout(), user)
				return nil
			})
		},
	}

	cmd.Flags().String("email", "", "Look the user up by email")
	cmd.Flags().Int64("id", 0, "Look the user up by id")
	cmd.MarkFlagsMutuallyExclusive("email", "id")

	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user and the user's tracker keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				user, err := lookupUser(ctx, a.db, args[0])
				if err != nil {
					return err
				}
				if err := a.db.DeleteUser(ctx, user.UserID); err != nil {
					return err
				}
				a.logger.Info("user deleted", "user_id", user.UserID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", user.Username)
				return nil
			})
		},
	}
}

// lookupUser returns the user with username or an error naming it.
func lookupUser(ctx context.Context, db *database.Database, username string) (*model.User, error) {
	user, err := db.GetUserWithUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("no user with username %s", username)
	}
	return user, nil
}

// writeUser prints a user without its password hash.
func writeUser(w io.Writer, u *model.User) {
	fmt.Fprintf(w, "ID:             %d\n", u.UserID)
	fmt.Fprintf(w, "Username:       %s\n", u.Username)
	fmt.Fprintf(w, "Email:          %s\n", u.Email)
	fmt.Fprintf(w, "Email verified: %t\n", u.EmailVerified)
	fmt.Fprintf(w, "Administrator:  %t\n", u.Administrator)
}
