package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/agsdev/tasks-api/internal/platform/logger"
	"github.com/agsdev/tasks-api/internal/store"
	"github.com/google/uuid"
)

// TaskService provides the task operations available to an authenticated
// user. Every operation is scoped to userID: another user's task is
// indistinguishable from a missing one and yields store.ErrTaskNotFound.
type TaskService interface {
	// List returns the user's tasks, oldest first.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Get returns one of the user's tasks.
	Get(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error)

	// Create validates and stores a new task owned by userID.
	Create(ctx context.Context, userID uuid.UUID, params domain.NewTaskParams) (*domain.Task, error)

	// Update applies patch to one of the user's tasks.
	Update(ctx context.Context, taskID, userID uuid.UUID, patch domain.TaskPatch) error

	// Delete removes one of the user's tasks.
	Delete(ctx context.Context, taskID, userID uuid.UUID) error
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	db     store.TxBeginner
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks store.TaskStore, db store.TxBeginner, logger *slog.Logger) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		tasks:  tasks,
		db:     db,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// List implements TaskService.
func (s *taskServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnidentified
	}

	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		s.log(ctx).Error("failed to list tasks",
			slog.Any("error", err),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("task", "list", err)
	}
	return tasks, nil
}

// Get implements TaskService.
func (s *taskServiceImpl) Get(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnidentified
	}

	task, err := s.tasks.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, s.wrap(ctx, "get", taskID, userID, err)
	}
	return task, nil
}

// Create implements TaskService.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	params domain.NewTaskParams,
) (*domain.Task, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnidentified
	}

	task, err := domain.NewTask(userID, params)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		// The task itself was valid, so an invalid entity here means the
		// owner no longer exists.
		if errors.Is(err, store.ErrInvalidEntity) {
			s.log(ctx).Warn("task owner does not exist", slog.String("user_id", userID.String()))
			return nil, fmt.Errorf("%w: %w", domain.ErrUnidentified, err)
		}
		return nil, s.wrap(ctx, "create", task.ID, userID, err)
	}

	s.log(ctx).Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))
	return task, nil
}

// Update implements TaskService. The read, the merge and the write happen in
// one transaction, and the write is filtered by owner again.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	taskID, userID uuid.UUID,
	patch domain.TaskPatch,
) error {
	if userID == uuid.Nil {
		return domain.ErrUnidentified
	}
	if err := patch.Validate(); err != nil {
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByID(ctx, taskID, userID)
		if err != nil {
			return err
		}

		patch.Apply(task)
		if err := task.Validate(); err != nil {
			return err
		}

		return txTasks.Update(ctx, task)
	})
	if err != nil {
		return s.wrap(ctx, "update", taskID, userID, err)
	}
	return nil
}

// Delete implements TaskService.
func (s *taskServiceImpl) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.ErrUnidentified
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		if _, err := txTasks.GetByID(ctx, taskID, userID); err != nil {
			return err
		}
		return txTasks.Delete(ctx, taskID, userID)
	})
	if err != nil {
		return s.wrap(ctx, "delete", taskID, userID, err)
	}
	return nil
}

func (s *taskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// wrap passes expected outcomes through unchanged and wraps everything else
// in a ServiceError.
func (s *taskServiceImpl) wrap(ctx context.Context, op string, taskID, userID uuid.UUID, err error) error {
	if errors.Is(err, store.ErrTaskNotFound) || errors.Is(err, domain.ErrValidation) {
		s.log(ctx).Debug("task operation rejected",
			slog.String("operation", op),
			slog.String("task_id", taskID.String()),
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		return err
	}

	s.log(ctx).Error("task operation failed",
		slog.String("operation", op),
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()),
		slog.Any("error", err))
	return NewServiceError("task", op, err)
}
