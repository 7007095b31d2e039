package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/agsdev/tasks-api/internal/api/shared"
	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/agsdev/tasks-api/internal/platform/logger"
	"github.com/agsdev/tasks-api/internal/platform/metrics"
	"github.com/agsdev/tasks-api/internal/service"
)

// RegisterSuccessMessage is the body message of a successful registration.
const RegisterSuccessMessage = "User registered successfully"

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	accounts service.AccountService
	metrics  metrics.Recorder
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// A nil recorder disables metrics.
func NewAuthHandler(accounts service.AccountService, recorder metrics.Recorder, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AuthHandler{
		accounts: accounts,
		metrics:  recorder,
		logger:   logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		h.metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeRejected)
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		h.metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeRejected)
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.accounts.Register(r.Context(), req.Username, req.Password); err != nil {
		h.metrics.RecordAuthEvent(metrics.EventRegister, outcomeFor(err))
		HandleAPIError(w, r, err, "Failed to register user")
		return
	}

	h.metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeSuccess)
	log.Debug("registration succeeded", slog.String("username", req.Username))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: RegisterSuccessMessage})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		h.metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeRejected)
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		h.metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeRejected)
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.RecordAuthEvent(metrics.EventLogin, outcomeFor(err))
		if errors.Is(err, service.ErrInvalidCredentials) {
			HandleAPIError(w, r, err, "", shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	h.metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeSuccess)
	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:      result.Token,
		Username:   result.Username,
		Expiration: result.ExpiresAt.UTC(),
	})
}

// outcomeFor classifies a failed auth operation: client-caused failures are
// rejections, anything else is an error.
func outcomeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrInvalidCredentials):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
