package auth

import (
	"testing"
	"time"

	"github.com/agsdev/tasks-api/internal/config"
	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// DefaultJWTConfig returns a standard configuration for JWT authentication
// suitable for testing.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		Issuer:               "tasks-api-test",
		Audience:             "tasks-api-test-clients",
		TokenLifetimeMinutes: 60,
		BcryptCost:           bcrypt.MinCost,
		MaxConcurrentHashes:  4,
	}
}

// NewTestJWTService creates a JWT service whose clock is timeFunc.
func NewTestJWTService(cfg config.AuthConfig, timeFunc func() time.Time) (JWTService, error) {
	return newHMACJWTService(cfg, timeFunc)
}

// RequireTestJWTService creates a JWT service with DefaultJWTConfig and the
// real clock, failing the test on error.
func RequireTestJWTService(t *testing.T) JWTService {
	t.Helper()
	service, err := NewJWTService(DefaultJWTConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return service
}

// RequireTestHasher creates a bcrypt hasher at the minimum cost.
func RequireTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	hasher, err := NewBcryptHasher(bcrypt.MinCost, 4, nil)
	require.NoError(t, err, "Failed to create test password hasher")
	return hasher
}

// GenerateAuthHeaderForTestingT returns an Authorization header value with a
// valid bearer token for user.
func GenerateAuthHeaderForTestingT(t *testing.T, svc JWTService, user *domain.User) string {
	t.Helper()
	token, err := svc.GenerateToken(t.Context(), user)
	require.NoError(t, err, "Failed to generate auth header")
	return "Bearer " + token.Token
}
