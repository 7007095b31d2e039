package mocks

import (
	"context"

	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/agsdev/tasks-api/internal/service"
	"github.com/google/uuid"
)

// MockAccountService implements service.AccountService for testing
type MockAccountService struct {
	RegisterFn func(ctx context.Context, username, password string) error
	LoginFn    func(ctx context.Context, username, password string) (*service.LoginResult, error)

	LoginResult *service.LoginResult
	Err         error
}

var _ service.AccountService = (*MockAccountService)(nil)

// Register implements the service.AccountService interface
func (m *MockAccountService) Register(ctx context.Context, username, password string) error {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, password)
	}
	return m.Err
}

// Login implements the service.AccountService interface
func (m *MockAccountService) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return m.LoginResult, m.Err
}

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	ListFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	GetFn    func(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error)
	CreateFn func(ctx context.Context, userID uuid.UUID, params domain.NewTaskParams) (*domain.Task, error)
	UpdateFn func(ctx context.Context, taskID, userID uuid.UUID, patch domain.TaskPatch) error
	DeleteFn func(ctx context.Context, taskID, userID uuid.UUID) error

	Tasks []*domain.Task
	Task  *domain.Task
	Err   error
}

var _ service.TaskService = (*MockTaskService)(nil)

// List implements the service.TaskService interface
func (m *MockTaskService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return m.Tasks, m.Err
}

// Get implements the service.TaskService interface
func (m *MockTaskService) Get(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, taskID, userID)
	}
	return m.Task, m.Err
}

// Create implements the service.TaskService interface
func (m *MockTaskService) Create(
	ctx context.Context,
	userID uuid.UUID,
	params domain.NewTaskParams,
) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, params)
	}
	return m.Task, m.Err
}

// Update implements the service.TaskService interface
func (m *MockTaskService) Update(ctx context.Context, taskID, userID uuid.UUID, patch domain.TaskPatch) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, taskID, userID, patch)
	}
	return m.Err
}

// Delete implements the service.TaskService interface
func (m *MockTaskService) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, taskID, userID)
	}
	return m.Err
}
