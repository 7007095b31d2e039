// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/agsdev/tasks-api/internal/config"
	"github.com/agsdev/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	l, err := logger.Setup(config.ServerConfig{LogLevel: "debug", LogFormat: "text", Port: 8080})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default())
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := logger.ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	l := logger.New(buf, slog.LevelWarn, "json")

	l.Info("hidden")
	l.Warn("shown", slog.String("component", "test"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "test", entries[0]["component"])
}

func TestRedactingHandler(t *testing.T) {
	l, buf := logger.GetTestLogger(t)

	dbErr := errors.New("dial postgres://tasks:hunter2pw@db:5432/tasks failed")
	l.Error("database unavailable",
		slog.Any("error", dbErr),
		slog.String("path", "/api/tasks"),
	)
	l.With(slog.String("error", "password=opensesame")).Warn("bad input")

	logs := buf.String()
	assert.NotContains(t, logs, "hunter2pw")
	assert.NotContains(t, logs, "opensesame")
	assert.Contains(t, logs, `"path":"/api/tasks"`)
	logger.AssertLogContains(t, buf, "database unavailable")
}

func TestFromContext(t *testing.T) {
	fallback, _ := logger.GetTestLogger(t)

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, logger.FromContext(context.Background()))

	ctx, scoped, buf := logger.NewLogCaptureContext(t)
	assert.Same(t, scoped, logger.FromContextOrDefault(ctx, fallback))

	logger.FromContext(ctx).Info("scoped message")
	assert.True(t, strings.Contains(buf.String(), "scoped message"))
}
