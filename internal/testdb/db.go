package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agsdev/tasks-api/internal/config"
	"github.com/agsdev/tasks-api/internal/platform/migrate"
	"github.com/agsdev/tasks-api/internal/platform/sqlite"
	"github.com/agsdev/tasks-api/internal/redact"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Environment variables consulted for the PostgreSQL test database, in order.
const (
	EnvDatabaseURL     = "DATABASE_URL"
	EnvTestDatabaseURL = "TASKS_TEST_DATABASE_URL"
)

// GetTestDatabaseURL returns the PostgreSQL URL to test against, or "".
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no PostgreSQL database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// OpenSQLite creates a migrated SQLite database in a temporary directory.
// It is closed when the test ends.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open(sqlite.DriverName, sqlite.DSN(filepath.Join(t.TempDir(), "tasks.db")))
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	SetupTestDatabaseSchema(t, config.DriverSQLite, db)
	return db
}

// GetTestDBWithT opens the PostgreSQL test database and applies migrations,
// skipping the test when no database URL is configured.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("Skipping PostgreSQL test: %s is not set", EnvDatabaseURL)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatalf("Failed to open database connection: %s", redact.Error(err))
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %s", redact.Error(err))
	}

	SetupTestDatabaseSchema(t, config.DriverPostgres, db)
	return db
}

// SetupTestDatabaseSchema applies all migrations for driver to db.
func SetupTestDatabaseSchema(t *testing.T, driver string, db *sql.DB) {
	t.Helper()

	m, err := migrate.New(driver, db, nil)
	if err != nil {
		t.Fatalf("Failed to create migrator: %v", err)
	}
	if err := m.Up(context.Background()); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// sharing one PostgreSQL database do not see each other's rows.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
