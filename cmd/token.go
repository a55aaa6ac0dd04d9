package main

import (
	"fmt"

	"table-booking/internal/domain/actor"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/jwt"
	"table-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Bearer tokens for the HTTP API",
	}
	cmd.AddCommand(newTokenIssueCmd())
	return cmd
}

func newTokenIssueCmd() *cobra.Command {
	var (
		userID      string
		roles       []string
		permissions []string
	)

	cmd := &cobra.Command{
		Use:     "issue",
		Short:   "Sign a token for a user id with roles and permissions",
		Example: `  table-booking token issue --user 0b6f... --role customer --perm reservations.book`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			a, err := actor.Parse(id, roles, permissions)
			if err != nil {
				return err
			}

			issuer := usecase.NewTokenIssuer(jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration))
			token, err := issuer.IssueToken(a)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (uuid)")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "role: customer, staff, manager, admin (repeatable)")
	cmd.Flags().StringSliceVar(&permissions, "perm", nil, "permission, e.g. reservations.book (repeatable)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
