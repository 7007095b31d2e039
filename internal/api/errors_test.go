package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agsdev/tasks-api/internal/api/shared"
	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/agsdev/tasks-api/internal/platform/logger"
	"github.com/agsdev/tasks-api/internal/service"
	"github.com/agsdev/tasks-api/internal/service/auth"
	"github.com/agsdev/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"nil error", nil, http.StatusInternalServerError, "An unexpected error occurred"},
		{"validation", domain.NewValidationError("title", "is required", nil), http.StatusBadRequest, "Validation error"},
		{"invalid json", fmt.Errorf("%w: eof", shared.ErrInvalidJSON), http.StatusBadRequest, "Invalid request format"},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest, "Invalid entity data"},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{"wrapped invalid token", fmt.Errorf("authenticate: %w", auth.ErrInvalidToken), http.StatusUnauthorized, "Invalid token"},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized, "Authorization header required"},
		{"unidentified", domain.ErrUnidentified, http.StatusUnauthorized, "User not identified"},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"wrapped task not found", fmt.Errorf("get: %w", store.ErrTaskNotFound), http.StatusNotFound, "Task not found"},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound, "Resource not found"},
		{"duplicate username", service.ErrDuplicateUsername, http.StatusConflict, "Username is already taken"},
		{"store duplicate", store.ErrUsernameExists, http.StatusConflict, "Username is already taken"},
		{"infrastructure", service.NewServiceError("task", "list", errors.New("dial tcp 10.0.0.5:5432")), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.expectedMsg, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Run("validation errors list every field", func(t *testing.T) {
		verr := &domain.ValidationError{}
		verr.Add("title", "is required")
		verr.Add("description", "must be at most 500 characters")

		w := httptest.NewRecorder()
		HandleAPIError(w, httptest.NewRequest(http.MethodPost, "/api/tasks", nil), fmt.Errorf("create: %w", verr), "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Validation error","fields":{"title":"is required","description":"must be at most 500 characters"}}`, w.Body.String())
	})

	t.Run("server message replaces generic 500 text", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleAPIError(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil), errors.New("boom"), "Failed to list tasks")

		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to list tasks", body.Error)
	})

	t.Run("server message does not override client errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleAPIError(w, httptest.NewRequest(http.MethodGet, "/api/tasks/x", nil), store.ErrTaskNotFound, "Failed to get task")

		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Task not found", body.Error)
	})

	t.Run("internal details never reach the client or the logs", func(t *testing.T) {
		ctx, _, buf := logger.NewLogCaptureContext(t)
		leaky := fmt.Errorf("query failed: %w",
			errors.New(`SELECT id FROM users WHERE username = 'alice': dial postgres://app:s3cret@db/tasks`))

		w := httptest.NewRecorder()
		HandleAPIError(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil).WithContext(ctx), leaky, "")

		for _, secret := range []string{"SELECT", "s3cret", "postgres://"} {
			assert.NotContains(t, w.Body.String(), secret)
			assert.NotContains(t, buf.String(), secret)
		}
	})
}
