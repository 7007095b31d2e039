package mocks

import (
	"context"
	"sync"

	"github.com/agsdev/tasks-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing.
// By default Hash returns "hashed:"+password and Verify succeeds when the
// hash is exactly that.
type MockPasswordHasher struct {
	HashFn   func(ctx context.Context, password string) (string, error)
	VerifyFn func(ctx context.Context, password, hash string) bool

	mu          sync.Mutex
	HashCalls   int
	VerifyCalls []string // hashes Verify was called with
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	m.mu.Lock()
	m.HashCalls++
	m.mu.Unlock()

	if m.HashFn != nil {
		return m.HashFn(ctx, password)
	}
	return "hashed:" + password, nil
}

// Verify implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Verify(ctx context.Context, password, hash string) bool {
	m.mu.Lock()
	m.VerifyCalls = append(m.VerifyCalls, hash)
	m.mu.Unlock()

	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, password, hash)
	}
	return hash == "hashed:"+password
}

// VerifyCallCount returns how many times Verify was called.
func (m *MockPasswordHasher) VerifyCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.VerifyCalls)
}
