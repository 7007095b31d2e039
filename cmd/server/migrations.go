package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/agsdev/tasks-api/internal/platform/migrate"
)

// handleMigrations executes a single goose command against db using the
// embedded schema for driver.
func handleMigrations(ctx context.Context, driver string, db *sql.DB, command string, logger *slog.Logger) error {
	migrator, err := migrate.New(driver, db, logger)
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}
	if err := migrator.Run(ctx, command); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}
