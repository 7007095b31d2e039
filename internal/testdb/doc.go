// Package testdb provides database helpers for tests: a migrated SQLite
// database per test, and a PostgreSQL connection when DATABASE_URL is set.
// PostgreSQL tests are skipped otherwise.
package testdb
