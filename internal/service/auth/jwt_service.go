package auth

import (
	"context"
	"time"

	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/google/uuid"
)

// JWTService issues and validates signed session tokens.
type JWTService interface {
	// GenerateToken creates a signed token identifying user.
	GenerateToken(ctx context.Context, user *domain.User) (*IssuedToken, error)

	// ValidateToken checks signature, issuer, audience and expiry and returns
	// the claims of a valid token. Any failure yields ErrInvalidToken.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

// IssuedToken is a freshly signed token together with its expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// Claims holds the validated contents of a token.
type Claims struct {
	UserID    uuid.UUID
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
