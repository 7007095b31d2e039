package api

import (
	"errors"
	"net/http"

	"github.com/agsdev/tasks-api/internal/api/shared"
	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/agsdev/tasks-api/internal/service"
	"github.com/agsdev/tasks-api/internal/service/auth"
	"github.com/agsdev/tasks-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Malformed input
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidJSON),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnidentified),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors; a task owned by someone else lands here too
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return shared.ValidationErrorMessage

	case errors.Is(err, shared.ErrInvalidJSON):
		return "Invalid request format"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username or password"

	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"

	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnidentified):
		return "User not identified"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, store.ErrUsernameExists):
		return "Username is already taken"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the response for err. Validation errors get the
// per-field body; everything else gets a status from MapErrorToStatusCode
// and a message from GetSafeErrorMessage. serverMessage, when non-empty,
// replaces the generic text of a 500 response.
func HandleAPIError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	serverMessage string,
	opts ...shared.ResponseOption,
) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		shared.RespondWithValidationError(w, r, verr.FieldMessages())
		return
	}

	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && serverMessage != "" {
		message = serverMessage
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
