package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/agsdev/tasks-api/internal/mocks"
	"github.com/agsdev/tasks-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
		expectCall     bool
	}{
		{
			name:           "success",
			body:           `{"username":"alice","password":"secret1"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"User registered successfully"}`,
			expectCall:     true,
		},
		{
			name:           "duplicate",
			body:           `{"username":"alice","password":"secret1"}`,
			serviceErr:     service.ErrDuplicateUsername,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Username is already taken"}`,
			expectCall:     true,
		},
		{
			name:           "missing fields",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation error","fields":{"username":"is required","password":"is required"}}`,
		},
		{
			name:           "too short",
			body:           `{"username":"al","password":"12345"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation error","fields":{"username":"must be at least 3 characters","password":"must be at least 6 characters"}}`,
		},
		{
			name:           "malformed json",
			body:           `{"username":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request format"}`,
		},
		{
			name:           "infrastructure failure",
			body:           `{"username":"alice","password":"secret1"}`,
			serviceErr:     service.NewServiceError("account", "register", errors.New("connection reset")),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to register user"}`,
			expectCall:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			accounts := &mocks.MockAccountService{
				RegisterFn: func(_ context.Context, username, password string) error {
					called = true
					assert.Equal(t, "alice", username)
					assert.Equal(t, "secret1", password)
					return tt.serviceErr
				},
			}
			h := NewAuthHandler(accounts, nil, slog.Default())

			w := postJSON(h.Register, "/api/auth/register", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectCall, called)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	expiresAt := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		accounts := &mocks.MockAccountService{
			LoginResult: &service.LoginResult{Token: "signed.jwt.value", Username: "alice", ExpiresAt: expiresAt},
		}
		h := NewAuthHandler(accounts, nil, slog.Default())

		w := postJSON(h.Login, "/api/auth/login", `{"username":"alice","password":"secret1"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"token":"signed.jwt.value","username":"alice","expiration":"2025-06-01T14:00:00Z"}`,
			w.Body.String())
	})

	t.Run("wrong password and unknown user look identical", func(t *testing.T) {
		accounts := &mocks.MockAccountService{Err: service.ErrInvalidCredentials}
		h := NewAuthHandler(accounts, nil, slog.Default())

		first := postJSON(h.Login, "/api/auth/login", `{"username":"alice","password":"wrong"}`)
		second := postJSON(h.Login, "/api/auth/login", `{"username":"nobody","password":"secret1"}`)

		assert.Equal(t, http.StatusUnauthorized, first.Code)
		assert.Equal(t, first.Code, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.JSONEq(t, `{"error":"Invalid username or password"}`, first.Body.String())
	})

	t.Run("missing password", func(t *testing.T) {
		called := false
		accounts := &mocks.MockAccountService{
			LoginFn: func(context.Context, string, string) (*service.LoginResult, error) {
				called = true
				return nil, nil
			},
		}
		h := NewAuthHandler(accounts, nil, slog.Default())

		w := postJSON(h.Login, "/api/auth/login", `{"username":"alice"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, map[string]any{"password": "is required"}, body["fields"])
	})

	t.Run("validation error from the service", func(t *testing.T) {
		accounts := &mocks.MockAccountService{Err: domain.NewValidationError("password", "must be at most 72 bytes", nil)}
		h := NewAuthHandler(accounts, nil, slog.Default())

		w := postJSON(h.Login, "/api/auth/login", `{"username":"alice","password":"secret1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNewAuthHandler_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() { NewAuthHandler(&mocks.MockAccountService{}, nil, nil) })
}
