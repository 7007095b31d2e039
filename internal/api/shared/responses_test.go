package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agsdev/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:         "object",
			status:       http.StatusOK,
			data:         map[string]interface{}{"message": "success", "data": 123},
			expectedBody: `{"message":"success","data":123}`,
		},
		{
			name:         "empty list",
			status:       http.StatusOK,
			data:         []string{},
			expectedBody: `[]`,
		},
		{
			name:         "created",
			status:       http.StatusCreated,
			data:         map[string]string{"id": "1"},
			expectedBody: `{"id":"1"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestRespondWithError_IncludesTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Task not found")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", body.Error)
	assert.Equal(t, GetTraceID(req.Context()), body.TraceID)
}

func TestRespondWithValidationError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithValidationError(w, req, map[string]string{"title": "is required"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Validation error","fields":{"title":"is required"}}`, w.Body.String())

	w = httptest.NewRecorder()
	RespondWithValidationError(w, req, nil)
	assert.JSONEq(t, `{"error":"Validation error","fields":{}}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	ctx, _, buf := logger.NewLogCaptureContext(t)
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	secretErr := errors.New(`pq: failed for "postgres://admin:hunter2@db:5432/tasks"`)
	RespondWithErrorAndLog(w, req, http.StatusInternalServerError, "An unexpected error occurred", secretErr)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.NotContains(t, w.Body.String(), "postgres://")
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")

	logs := buf.String()
	assert.Contains(t, logs, "API error response")
	assert.Contains(t, logs, `"level":"ERROR"`)
	assert.NotContains(t, logs, "hunter2")
}

func TestRespondWithErrorAndLog_LevelSelection(t *testing.T) {
	ctx, _, buf := logger.NewLogCaptureContext(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil).WithContext(ctx)

	RespondWithErrorAndLog(httptest.NewRecorder(), req, http.StatusUnauthorized, "Invalid username or password",
		errors.New("bad password"), WithElevatedLogLevel())

	assert.Contains(t, buf.String(), `"level":"WARN"`)
}
