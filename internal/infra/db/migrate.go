package db

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"table-booking/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type MigrateAction string

const (
	MigrateUp   MigrateAction = "up"
	MigrateDown MigrateAction = "down"
	MigrateDrop MigrateAction = "drop"
)

func newMigrate(dsn string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	mig, err := migrate.NewWithSourceInstance("iofs", source, toMigrateURL(dsn))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}
	return mig, nil
}

// toMigrateURL swaps the scheme for the one the pgx/v5 migrate driver registers.
func toMigrateURL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// Migrate runs embedded migrations: up applies all, down rolls back one step, drop rolls back all.
func Migrate(cfg config.DBConfig, action MigrateAction) error {
	return MigrateDSN(cfg.BuildDSN(), action)
}

func MigrateDSN(dsn string, action MigrateAction) error {
	mig, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			slog.Warn("failed to close migrate instance", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	switch action {
	case MigrateUp:
		err = mig.Up()
	case MigrateDown:
		err = mig.Steps(-1)
	case MigrateDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("unknown migrate action %q", action)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migrations (%s): %w", action, err)
	}

	slog.Info("database migrations applied", "action", string(action))
	return nil
}
