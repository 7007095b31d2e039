package store

import (
	"context"
	"database/sql"

	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/google/uuid"
)

// TaskStore defines the interface for task data persistence.
//
// Every read and write except Create is scoped by owner: a task owned by a
// different user behaves exactly like a task that does not exist and yields
// ErrTaskNotFound.
type TaskStore interface {
	// Create saves a new task. The owner must exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the task with the given id owned by userID.
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// ListByUser returns all tasks owned by userID ordered by creation time,
	// oldest first, with id as tie-breaker. Returns an empty slice, never nil.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update persists the mutable fields (title, description, completion
	// flag, due date) of task. ID, owner and creation time are never written.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given id owned by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
