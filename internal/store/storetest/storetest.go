// Package storetest holds behavioural tests shared by every store backend.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/agsdev/tasks-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stores is one isolated set of stores handed to a single test.
type Stores struct {
	Users store.UserStore
	Tasks store.TaskStore
}

// Factory returns fresh, empty stores for t.
type Factory func(t *testing.T) Stores

func strPtr(s string) *string { return &s }

func mustUser(t *testing.T, s Stores, username string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(username, "$2a$04$abcdefghijklmnopqrstuu5t1JdQ9lM8VMIYDLqBqy7Qe1n1G3pDu")
	require.NoError(t, err)
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func mustTask(t *testing.T, s Stores, owner uuid.UUID, title string, createdAt time.Time) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(owner, domain.NewTaskParams{Title: title})
	require.NoError(t, err)
	task.CreatedAt = createdAt.UTC().Truncate(time.Millisecond)
	require.NoError(t, s.Tasks.Create(context.Background(), task))
	return task
}

// RunUserStoreTests exercises a store.UserStore implementation.
func RunUserStoreTests(t *testing.T, newStores Factory) {
	t.Run("create and fetch", func(t *testing.T) {
		s := newStores(t)
		ctx := context.Background()
		u := mustUser(t, s, "alice")

		byID, err := s.Users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, byID.ID)
		assert.Equal(t, "alice", byID.Username)
		assert.Equal(t, u.PasswordHash, byID.PasswordHash)
		assert.True(t, u.CreatedAt.Equal(byID.CreatedAt))

		byName, err := s.Users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byName.ID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		s := newStores(t)
		ctx := context.Background()
		first := mustUser(t, s, "alice")

		dup, err := domain.NewUser("alice", "$2a$04$someotherhashvalue")
		require.NoError(t, err)
		err = s.Users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.True(t, store.IsDuplicateError(err))

		got, err := s.Users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)

		_, err = s.Users.GetByID(ctx, dup.ID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		s := newStores(t)
		mustUser(t, s, "alice")
		upper := mustUser(t, s, "Alice")

		got, err := s.Users.GetByUsername(context.Background(), "Alice")
		require.NoError(t, err)
		assert.Equal(t, upper.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		s := newStores(t)
		ctx := context.Background()

		_, err := s.Users.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.True(t, store.IsNotFoundError(err))

		_, err = s.Users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("invalid user rejected", func(t *testing.T) {
		s := newStores(t)
		err := s.Users.Create(context.Background(), &domain.User{ID: uuid.New(), Username: "x"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

// RunTaskStoreTests exercises a store.TaskStore implementation.
func RunTaskStoreTests(t *testing.T, newStores Factory) {
	t.Run("buy milk round trip", func(t *testing.T) {
		s := newStores(t)
		ctx := context.Background()
		owner := mustUser(t, s, "alice")

		task, err := domain.NewTask(owner.ID, domain.NewTaskParams{Title: "Buy milk"})
		require.NoError(t, err)
		require.NoError(t, s.Tasks.Create(ctx, task))

		got, err := s.Tasks.GetByID(ctx, task.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, owner.ID, got.UserID)
		assert.Equal(t, "Buy milk", got.Title)
		assert.False(t, got.IsCompleted)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.DueDate)
		assert.True(t, task.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("optional fields persist", func(t *testing.T) {
		s := newStores(t)
		ctx := context.Background()
		owner := mustUser(t, s, "alice")
		due := time.Date(2030, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

		task, err := domain.NewTask(owner.ID, domain.NewTaskParams{
			Title:       "Pay rent",
			Description: strPtr("before the 5th"),
			DueDate:     &due,
		})
		require.NoError(t, err)
		require.NoError(t, s.Tasks.Create(ctx, task))

		got, err := s.Tasks.GetByID(ctx, task.ID, owner.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Description)
		assert.Equal(t, "before the 5th", *got.Description)
		require.NotNil(t, got.DueDate)
		assert.True(t, due.Equal(*got.DueDate))
	})

	t.Run("list is ordered and scoped to owner", func(t *testing.T) {
		s := newStores(t)
		ctx := context.Background()
		alice := mustUser(t, s, "alice")
		bob := mustUser(t, s, "bob")
		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		second := mustTask(t, s, alice.ID, "second", base.Add(time.Minute))
		first := mustTask(t, s, alice.ID, "first", base)
		mustTask(t, s, bob.ID, "bob's", base)

		tasks, err := s.Tasks.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, first.ID, tasks[0].ID)
		assert.Equal(t, second.ID, tasks[1].ID)
		for _, task := range tasks {
			assert.Equal(t, alice.ID, task.UserID)
		}

		empty, err := s.Tasks.ListByUser(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("update persists mutable fields only", func(t *testing.T) {
		s := newStores(t)
		ctx := context.Background()
		owner := mustUser(t, s, "alice")
		due := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

		task, err := domain.NewTask(owner.ID, domain.NewTaskParams{Title: "Draft", DueDate: &due})
		require.NoError(t, err)
		require.NoError(t, s.Tasks.Create(ctx, task))

		domain.TaskPatch{
			Title:       domain.Some("Final"),
			IsCompleted: domain.Some(true),
			DueDate:     domain.Null[time.Time](),
		}.Apply(task)
		require.NoError(t, s.Tasks.Update(ctx, task))

		got, err := s.Tasks.GetByID(ctx, task.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "Final", got.Title)
		assert.True(t, got.IsCompleted)
		assert.Nil(t, got.DueDate)
		assert.True(t, task.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("other users cannot see or touch a task", func(t *testing.T) {
		s := newStores(t)
		ctx := context.Background()
		alice := mustUser(t, s, "alice")
		bob := mustUser(t, s, "bob")
		task := mustTask(t, s, alice.ID, "private", time.Now())

		_, err := s.Tasks.GetByID(ctx, task.ID, bob.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		hijack := *task
		hijack.UserID = bob.ID
		hijack.Title = "hijacked"
		assert.ErrorIs(t, s.Tasks.Update(ctx, &hijack), store.ErrTaskNotFound)

		assert.ErrorIs(t, s.Tasks.Delete(ctx, task.ID, bob.ID), store.ErrTaskNotFound)

		got, err := s.Tasks.GetByID(ctx, task.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "private", got.Title)
		assert.Equal(t, alice.ID, got.UserID)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStores(t)
		ctx := context.Background()
		owner := mustUser(t, s, "alice")
		task := mustTask(t, s, owner.ID, "short-lived", time.Now())

		require.NoError(t, s.Tasks.Delete(ctx, task.ID, owner.ID))

		_, err := s.Tasks.GetByID(ctx, task.ID, owner.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.ErrorIs(t, s.Tasks.Delete(ctx, task.ID, owner.ID), store.ErrTaskNotFound)
	})

	t.Run("unknown owner rejected", func(t *testing.T) {
		s := newStores(t)
		task, err := domain.NewTask(uuid.New(), domain.NewTaskParams{Title: "orphan"})
		require.NoError(t, err)
		assert.ErrorIs(t, s.Tasks.Create(context.Background(), task), store.ErrInvalidEntity)
	})

	t.Run("invalid task rejected", func(t *testing.T) {
		s := newStores(t)
		owner := mustUser(t, s, "alice")
		task := &domain.Task{ID: uuid.New(), UserID: owner.ID, CreatedAt: time.Now()}
		assert.ErrorIs(t, s.Tasks.Create(context.Background(), task), domain.ErrValidation)
	})
}
