package main

import (
	"log/slog"

	"table-booking/internal/infra/db"
	"table-booking/internal/pkg/config"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.AddCommand(newMigrateActionCmd(db.MigrateUp, "Apply all pending migrations"))
	cmd.AddCommand(newMigrateActionCmd(db.MigrateDown, "Roll back the latest migration"))
	return cmd
}

func newMigrateActionCmd(action db.MigrateAction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := db.Migrate(cfg.DB, action); err != nil {
				return err
			}
			slog.Info("migration finished", "action", string(action), "database", cfg.DB.DBName)
			return nil
		},
	}
}
