package service_test

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/agsdev/tasks-api/internal/domain"
	"github.com/agsdev/tasks-api/internal/mocks"
	"github.com/agsdev/tasks-api/internal/platform/sqlite"
	"github.com/agsdev/tasks-api/internal/service"
	"github.com/agsdev/tasks-api/internal/service/auth"
	"github.com/agsdev/tasks-api/internal/store"
	"github.com/agsdev/tasks-api/internal/testdb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountFixture struct {
	db     *sql.DB
	users  store.UserStore
	tokens auth.JWTService
	svc    service.AccountService
}

// newAccountFixture wires the service to a real SQLite store, a real JWT
// service and a real bcrypt hasher at minimum cost.
func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	db := testdb.OpenSQLite(t)
	users := sqlite.NewSQLiteUserStore(db, nil)
	tokens := auth.RequireTestJWTService(t)
	return &accountFixture{
		db:     db,
		users:  users,
		tokens: tokens,
		svc:    newAccountService(t, users, db, auth.RequireTestHasher(t), tokens, nil),
	}
}

func newAccountService(
	t *testing.T,
	users store.UserStore,
	db store.TxBeginner,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	logger *slog.Logger,
) service.AccountService {
	t.Helper()
	svc, err := service.NewAccountService(users, db, hasher, tokens, logger)
	require.NoError(t, err)
	return svc
}

func TestAccountService_RegisterLoginRoundTrip(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "alice", "secret1"))

	stored, err := f.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "secret1")

	result, err := f.svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, stored.ID, result.UserID)
	assert.False(t, result.ExpiresAt.IsZero())

	claims, err := f.tokens.ValidateToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestAccountService_RegisterDuplicate(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "alice", "secret1"))
	original, err := f.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	err = f.svc.Register(ctx, "alice", "another-password")
	assert.ErrorIs(t, err, service.ErrDuplicateUsername)

	after, err := f.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, original.ID, after.ID)
	assert.Equal(t, original.PasswordHash, after.PasswordHash)

	// The first password still works, the second does not.
	_, err = f.svc.Login(ctx, "alice", "secret1")
	assert.NoError(t, err)
	_, err = f.svc.Login(ctx, "alice", "another-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAccountService_RegisterConcurrent(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)

	const attempts = 6
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dups int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.svc.Register(context.Background(), "racer", "secret1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, service.ErrDuplicateUsername):
				dups++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, dups)
}

func TestAccountService_RegisterValidation(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)

	err := f.svc.Register(context.Background(), "ab", "123")
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := verr.FieldMessages()
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")

	_, err = f.users.GetByUsername(context.Background(), "ab")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAccountService_LoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Register(ctx, "alice", "secret1"))

	_, wrongPassword := f.svc.Login(ctx, "alice", "wrong-password")
	_, unknownUser := f.svc.Login(ctx, "nobody", "secret1")

	assert.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, service.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAccountService_LoginUnknownUserStillVerifies(t *testing.T) {
	t.Parallel()

	users := new(mocks.TestifyMockUserStore)
	users.On("GetByUsername", mock.Anything, "nobody").Return(nil, store.ErrUserNotFound)
	hasher := &mocks.MockPasswordHasher{}
	tokens := &mocks.MockJWTService{}

	svc := newAccountService(t, users, testdb.OpenSQLite(t), hasher, tokens, nil)
	require.Equal(t, 1, hasher.HashCalls, "the dummy hash is computed at construction")

	_, err := svc.Login(context.Background(), "nobody", "secret1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Equal(t, 1, hasher.VerifyCallCount(), "a dummy hash must still be verified")
	assert.Equal(t, 1, hasher.HashCalls, "the first unknown-user login does not hash")

	_, err = svc.Login(context.Background(), "nobody", "secret1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Equal(t, 2, hasher.VerifyCallCount())
	assert.Equal(t, 1, hasher.HashCalls)
	users.AssertExpectations(t)
}

func TestNewAccountService_DummyHashFailure(t *testing.T) {
	t.Parallel()
	hashErr := errors.New("entropy exhausted")
	hasher := &mocks.MockPasswordHasher{
		HashFn: func(context.Context, string) (string, error) { return "", hashErr },
	}

	svc, err := service.NewAccountService(new(mocks.TestifyMockUserStore), testdb.OpenSQLite(t), hasher, &mocks.MockJWTService{}, nil)
	assert.ErrorIs(t, err, hashErr)
	assert.Nil(t, svc)
}

func TestAccountService_InfrastructureErrors(t *testing.T) {
	t.Parallel()
	dbErr := errors.New("connection refused")

	t.Run("lookup failure on register", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.TestifyMockUserStore)
		users.On("GetByUsername", mock.Anything, "alice").Return(nil, dbErr)
		svc := newAccountService(t, users, testdb.OpenSQLite(t), &mocks.MockPasswordHasher{}, &mocks.MockJWTService{}, nil)

		err := svc.Register(context.Background(), "alice", "secret1")
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, service.ErrDuplicateUsername)
		var serviceErr *service.ServiceError
		assert.ErrorAs(t, err, &serviceErr)
	})

	t.Run("unique violation at insert maps to duplicate", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.TestifyMockUserStore)
		users.On("GetByUsername", mock.Anything, "alice").Return(nil, store.ErrUserNotFound)
		users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(store.ErrUsernameExists)
		svc := newAccountService(t, users, testdb.OpenSQLite(t), &mocks.MockPasswordHasher{}, &mocks.MockJWTService{}, nil)

		err := svc.Register(context.Background(), "alice", "secret1")
		assert.ErrorIs(t, err, service.ErrDuplicateUsername)
		users.AssertExpectations(t)
	})

	t.Run("stores the hash not the password", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.TestifyMockUserStore)
		users.On("GetByUsername", mock.Anything, "alice").Return(nil, store.ErrUserNotFound)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "alice" && u.PasswordHash == "hashed:secret1" && u.ID != uuid.Nil
		})).Return(nil)
		svc := newAccountService(t, users, testdb.OpenSQLite(t), &mocks.MockPasswordHasher{}, &mocks.MockJWTService{}, nil)

		require.NoError(t, svc.Register(context.Background(), "alice", "secret1"))
		users.AssertExpectations(t)
	})

	t.Run("hash failure", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.TestifyMockUserStore)
		users.On("GetByUsername", mock.Anything, "alice").Return(nil, store.ErrUserNotFound)
		hasher := &mocks.MockPasswordHasher{
			HashFn: func(_ context.Context, password string) (string, error) {
				if password == "secret1" {
					return "", context.Canceled
				}
				return "hashed:" + password, nil
			},
		}
		svc := newAccountService(t, users, testdb.OpenSQLite(t), hasher, &mocks.MockJWTService{}, nil)

		err := svc.Register(context.Background(), "alice", "secret1")
		assert.ErrorIs(t, err, context.Canceled)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("token failure on login", func(t *testing.T) {
		t.Parallel()
		user := &domain.User{ID: uuid.New(), Username: "alice", PasswordHash: "hashed:secret1"}
		users := new(mocks.TestifyMockUserStore)
		users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
		tokens := &mocks.MockJWTService{Err: errors.New("signing failed")}
		svc := newAccountService(t, users, testdb.OpenSQLite(t), &mocks.MockPasswordHasher{}, tokens, nil)

		_, err := svc.Login(context.Background(), "alice", "secret1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
