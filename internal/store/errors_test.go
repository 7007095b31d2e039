package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		notFound  bool
		duplicate bool
	}{
		{name: "nil", err: nil},
		{name: "generic", err: errors.New("boom")},
		{name: "not found", err: ErrNotFound, notFound: true},
		{name: "user not found", err: ErrUserNotFound, notFound: true},
		{name: "wrapped task not found", err: fmt.Errorf("get: %w", ErrTaskNotFound), notFound: true},
		{name: "username exists", err: ErrUsernameExists, duplicate: true},
		{
			name:      "store error wrapping duplicate",
			err:       NewStoreError("user", "create", ErrUsernameExists),
			duplicate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.duplicate, IsDuplicateError(tt.err))
		})
	}
}

func TestErrorSentinelsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrUserNotFound, ErrTaskNotFound))
	assert.False(t, errors.Is(ErrTaskNotFound, ErrUserNotFound))
	assert.Equal(t, "entity not found: task", ErrTaskNotFound.Error())
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("task", "update", cause)

	assert.Equal(t, "task store: update failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	var storeErr *StoreError
	wrapped := fmt.Errorf("service: %w", NewStoreError("user", "create", ErrUsernameExists))
	assert.ErrorAs(t, wrapped, &storeErr)
	assert.Equal(t, "user", storeErr.Entity)
	assert.ErrorIs(t, wrapped, ErrDuplicate)

	assert.Equal(t, "task store: delete failed", NewStoreError("task", "delete", nil).Error())
}
