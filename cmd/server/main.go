// Package main implements the entry point for the tasks API server, which
// serves user accounts and per-user task lists over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/agsdev/tasks-api/internal/config"
	"github.com/agsdev/tasks-api/internal/platform/logger"
	"github.com/agsdev/tasks-api/internal/platform/migrate"
)

// runOptions holds the command-line flags.
type runOptions struct {
	migrateCmd     string
	migrationsOnly bool
}

func parseFlags(fs *flag.FlagSet, args []string) (runOptions, error) {
	var opts runOptions
	fs.StringVar(&opts.migrateCmd, "migrate", "",
		"Run a migration command and exit: up, down, status, version, reset")
	fs.BoolVar(&opts.migrationsOnly, "migrations-only", false,
		"Apply pending migrations and exit without starting the server")
	if err := fs.Parse(args); err != nil {
		return runOptions{}, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, prepares the database and either executes a
// migration command or serves HTTP until ctx is cancelled.
func run(ctx context.Context, opts runOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)

	db, err := setupAppDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", "error", err)
		}
	}()

	if opts.migrateCmd != "" {
		return handleMigrations(ctx, cfg.Database.Driver, db, opts.migrateCmd, appLogger)
	}

	if err := handleMigrations(ctx, cfg.Database.Driver, db, migrate.CommandUp, appLogger); err != nil {
		return err
	}
	if opts.migrationsOnly {
		appLogger.Info("Migrations applied, exiting")
		return nil
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
