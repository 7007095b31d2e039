package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agsdev/tasks-api/internal/api/shared"
	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithParam(name, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathUUID(t *testing.T) {
	id := uuid.New()

	got, err := getPathUUID(requestWithParam("id", id.String()), "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = getPathUUID(requestWithParam("id", "not-a-uuid"), "id")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = getPathUUID(requestWithParam("other", id.String()), "id")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHandleUserIDAndPathUUID(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	t.Run("both present", func(t *testing.T) {
		req := requestWithParam("id", taskID.String())
		req = req.WithContext(shared.WithUserID(req.Context(), userID))
		w := httptest.NewRecorder()

		gotUser, gotTask, ok := handleUserIDAndPathUUID(w, req, "id", nil)
		assert.True(t, ok)
		assert.Equal(t, userID, gotUser)
		assert.Equal(t, taskID, gotTask)
	})

	t.Run("missing user", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, _, ok := handleUserIDAndPathUUID(w, requestWithParam("id", taskID.String()), "id", nil)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		req := requestWithParam("id", "42")
		req = req.WithContext(shared.WithUserID(req.Context(), userID))
		w := httptest.NewRecorder()

		_, _, ok := handleUserIDAndPathUUID(w, req, "id", nil)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Validation error","fields":{"id":"has invalid format"}}`, w.Body.String())
	})
}
