package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/agsdev/tasks-api/internal/platform/logger"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// PasswordHasher turns passwords into salted one-way hashes and checks them.
type PasswordHasher interface {
	// Hash returns a salted bcrypt hash of password.
	Hash(ctx context.Context, password string) (string, error)

	// Verify reports whether password matches hash. A malformed hash never
	// matches.
	Verify(ctx context.Context, password, hash string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt. The number of hash
// operations running at once is bounded so that a burst of logins cannot
// starve the rest of the process of CPU.
type BcryptHasher struct {
	cost   int
	sem    *semaphore.Weighted
	logger *slog.Logger
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a hasher with the given bcrypt cost. A cost of 0
// selects bcrypt.DefaultCost; maxConcurrent of 0 selects GOMAXPROCS.
func NewBcryptHasher(cost, maxConcurrent int, logger *slog.Logger) (*BcryptHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BcryptHasher{
		cost:   cost,
		sem:    semaphore.NewWeighted(int64(maxConcurrent)),
		logger: logger.With(slog.String("component", "password_hasher")),
	}, nil
}

// Cost returns the bcrypt cost used for new hashes.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify implements PasswordHasher.
func (h *BcryptHasher) Verify(ctx context.Context, password, hash string) bool {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false
	default:
		// A stored hash that bcrypt cannot parse means the credential store
		// holds something this service never wrote.
		logger.FromContextOrDefault(ctx, h.logger).Error("stored password hash is malformed",
			slog.Any("error", err))
		return false
	}
}
