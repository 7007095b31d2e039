package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned for every token that fails validation:
	// malformed, badly signed, expired, not yet valid, or issued for another
	// issuer or audience. The specific reason is only logged.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingToken indicates that no bearer token was supplied.
	ErrMissingToken = errors.New("missing authentication token")
)
