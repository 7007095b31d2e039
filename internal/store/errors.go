package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every backend. Backends wrap driver errors so
// callers only ever test against these with errors.Is.
var (
	// ErrNotFound is the parent of every "no such row" error.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is the parent of every unique-constraint error.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity reports a row the database refused for integrity
	// reasons, such as a task whose owner does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrTaskNotFound covers both a missing task and one owned by another
	// user. Callers cannot tell the two apart.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records which entity and statement failed. Its message never
// includes the SQL text; the wrapped driver error may, so it is redacted
// before logging.
type StoreError struct {
	Entity string // "user" or "task"
	Op     string // "create", "update", "delete", ...
	Err    error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s store: %s failed", e.Entity, e.Op)
	}
	return fmt.Sprintf("%s store: %s failed: %v", e.Entity, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the entity and operation that produced it.
func NewStoreError(entity, op string, err error) *StoreError {
	return &StoreError{Entity: entity, Op: op, Err: err}
}
