// Package sqlite provides embedded SQLite implementations of the store
// interfaces using the pure-Go modernc.org/sqlite driver. Timestamps are
// stored as UTC unix milliseconds.
package sqlite
