// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. The postgres and sqlite packages under
// internal/platform provide the implementations.
package store
