package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Credential constraints.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	// MaxPasswordBytes is bcrypt's input limit; longer passwords are rejected
	// instead of being silently truncated.
	MaxPasswordBytes = 72
)

// User represents a registered account. The password hash never leaves the
// process in serialized form.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidateCredentials checks registration input before any hashing happens.
// Every violated constraint is reported.
func ValidateCredentials(username, password string) error {
	verr := &ValidationError{}
	validateUsername(verr, username)

	switch n := utf8.RuneCountInString(password); {
	case password == "":
		verr.Add("password", "is required")
	case n < MinPasswordLength:
		verr.Add("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	case len(password) > MaxPasswordBytes:
		verr.Add("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes))
	}

	return verr.OrNil()
}

// NewUser creates a User for an already-hashed password, generating its ID.
func NewUser(username, passwordHash string) (*User, error) {
	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	verr := &ValidationError{}
	if u.ID == uuid.Nil {
		verr.Add("id", "is required")
	}
	validateUsername(verr, u.Username)
	if u.PasswordHash == "" {
		verr.Add("password_hash", "is required")
	}
	return verr.OrNil()
}

func validateUsername(verr *ValidationError, username string) {
	n := utf8.RuneCountInString(username)
	switch {
	case strings.TrimSpace(username) == "":
		verr.Add("username", "is required")
	case n < MinUsernameLength || n > MaxUsernameLength:
		verr.Add("username", fmt.Sprintf("must be between %d and %d characters",
			MinUsernameLength, MaxUsernameLength))
	}
}
