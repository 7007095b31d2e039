package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/agsdev/tasks-api/internal/config"
	"github.com/agsdev/tasks-api/internal/platform/metrics"
	"github.com/agsdev/tasks-api/internal/platform/postgres"
	"github.com/agsdev/tasks-api/internal/platform/sqlite"
	"github.com/agsdev/tasks-api/internal/service"
	"github.com/agsdev/tasks-api/internal/service/auth"
	"github.com/agsdev/tasks-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	accountService service.AccountService
	taskService    service.TaskService

	registry *prometheus.Registry
	metrics  *metrics.Collector
}

// newApplication wires stores, services and metrics around an already
// migrated database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost, cfg.Auth.MaxConcurrentHashes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}
	app.passwordHasher = hasher

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		app.userStore = postgres.NewPostgresUserStore(db, logger)
		app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	case config.DriverSQLite:
		app.userStore = sqlite.NewSQLiteUserStore(db, logger)
		app.taskStore = sqlite.NewSQLiteTaskStore(db, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	app.accountService, err = service.NewAccountService(app.userStore, db, app.passwordHasher, app.jwtService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize account service: %w", err)
	}
	app.taskService = service.NewTaskService(app.taskStore, db, logger)

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, cfg.Database.Driver),
	)
	app.metrics = metrics.NewCollector(app.registry)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled or the listener fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
