// Package logger provides structured logging functionality for the application.
//
// It builds log/slog loggers (JSON by default, text on request) whose error
// attributes pass through package redact, and carries request-scoped loggers
// through context.Context.
package logger
