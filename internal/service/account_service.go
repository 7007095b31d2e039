package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/agsdev/tasks-api/internal/platform/logger"
	"github.com/agsdev/tasks-api/internal/service/auth"
	"github.com/agsdev/tasks-api/internal/store"
	"github.com/google/uuid"
)

// AccountService registers users and logs them in.
type AccountService interface {
	// Register creates an account. It returns nothing on success: the caller
	// logs in separately to obtain a token.
	Register(ctx context.Context, username, password string) error

	// Login checks the credentials and issues a session token. An unknown
	// username and a wrong password both yield ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Username  string
	UserID    uuid.UUID
}

// dummyPassword is hashed once and verified against whenever a login names
// an unknown user, so both failure paths spend a bcrypt comparison.
const dummyPassword = "tasks-api-login-timing-equalizer"

type accountServiceImpl struct {
	users  store.UserStore
	db     store.TxBeginner
	hasher auth.PasswordHasher
	tokens auth.JWTService
	logger *slog.Logger

	// dummyHash is verified against when a login names an unknown user.
	dummyHash string
}

// NewAccountService creates a new AccountService. It hashes the dummy
// password up front so the first unknown-user login costs the same single
// verify as every later one.
func NewAccountService(
	users store.UserStore,
	db store.TxBeginner,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	logger *slog.Logger,
) (AccountService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash(context.Background(), dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare login dummy hash: %w", err)
	}

	return &accountServiceImpl{
		users:     users,
		db:        db,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger.With(slog.String("component", "account_service")),
		dummyHash: dummyHash,
	}, nil
}

// Register implements AccountService.
func (s *accountServiceImpl) Register(ctx context.Context, username, password string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateCredentials(username, password); err != nil {
		log.Debug("registration rejected by validation", slog.String("username", username))
		return err
	}

	// Fast path only; the unique constraint below is what actually decides.
	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		log.Debug("registration rejected: username taken", slog.String("username", username))
		return ErrDuplicateUsername
	case !errors.Is(err, store.ErrUserNotFound):
		log.Error("failed to check username availability", slog.Any("error", err))
		return NewServiceError("account", "register", err)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return NewServiceError("account", "register", err)
	}

	user, err := domain.NewUser(username, hash)
	if err != nil {
		return err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("registration lost race for username", slog.String("username", username))
			return ErrDuplicateUsername
		}
		log.Error("failed to save user", slog.Any("error", err))
		return NewServiceError("account", "register", err)
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// Login implements AccountService.
func (s *accountServiceImpl) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.hasher.Verify(ctx, password, s.dummyHash)
			log.Debug("login failed: unknown username")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", slog.Any("error", err))
		return nil, NewServiceError("account", "login", err)
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Debug("login failed: wrong password", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	issued, err := s.tokens.GenerateToken(ctx, user)
	if err != nil {
		log.Error("failed to issue token", slog.Any("error", err))
		return nil, NewServiceError("account", "login", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))

	return &LoginResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		Username:  user.Username,
		UserID:    user.ID,
	}, nil
}
