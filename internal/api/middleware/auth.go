package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/agsdev/tasks-api/internal/api/shared"
	"github.com/agsdev/tasks-api/internal/platform/logger"
	"github.com/agsdev/tasks-api/internal/platform/metrics"
	"github.com/agsdev/tasks-api/internal/redact"
	"github.com/agsdev/tasks-api/internal/service/auth"
	"github.com/google/uuid"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	metrics    metrics.Recorder
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
// A nil recorder disables metrics.
func NewAuthMiddleware(jwtService auth.JWTService, recorder metrics.Recorder) *AuthMiddleware {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		metrics:    recorder,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// adds the user ID to the request context. Requests without a valid token
// never reach next.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.metrics.RecordAuthEvent(metrics.EventToken, metrics.OutcomeRejected)
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			m.metrics.RecordAuthEvent(metrics.EventToken, metrics.OutcomeRejected)
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				m.metrics.RecordAuthEvent(metrics.EventToken, metrics.OutcomeRejected)
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			m.metrics.RecordAuthEvent(metrics.EventToken, metrics.OutcomeError)
			logger.FromContext(r.Context()).Error("failed to validate token",
				slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}
		if claims == nil || claims.UserID == uuid.Nil {
			m.metrics.RecordAuthEvent(metrics.EventToken, metrics.OutcomeRejected)
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}

		m.metrics.RecordAuthEvent(metrics.EventToken, metrics.OutcomeSuccess)

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		log := logger.FromContext(ctx).With(slog.String("user_id", claims.UserID.String()))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from "Bearer <token>". The scheme is
// matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	return shared.GetUserID(r.Context())
}
