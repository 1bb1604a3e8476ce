package identity

import (
	"context"
	"testing"
	"time"

	"github.com/bizdesk/backend/internal/domain/identity"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/infrastructure/auth"
	"github.com/bizdesk/backend/internal/infrastructure/config"
	"github.com/bizdesk/backend/internal/infrastructure/persistence"
	"github.com/bizdesk/backend/internal/infrastructure/persistence/models"
	"github.com/bizdesk/backend/internal/infrastructure/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, limit, offset int) ([]identity.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const testPassword = "correct-horse-battery"

func newTestHasher(t *testing.T) *security.PasswordHasher {
	hasher, err := security.NewPasswordHasher(16, 1000, 32)
	require.NoError(t, err)
	return hasher
}

func newTestAuthService(t *testing.T, repo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "bizdesk-test",
	})
	return NewAuthService(repo, newTestHasher(t), jwtService, zap.NewNop())
}

func newTestUser(t *testing.T, password string) *identity.User {
	hasher := newTestHasher(t)
	salt, err := hasher.GenerateSalt()
	require.NoError(t, err)
	hash := hasher.HashPassword(password, salt)

	user, err := identity.NewUser("jdoe", security.EncodeToString(hash), security.EncodeToString(salt), identity.RoleStaff)
	require.NoError(t, err)
	return user
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)
		user := newTestUser(t, testPassword)

		repo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		result, err := svc.Authenticate(context.Background(), LoginInput{
			Username: "jdoe",
			Password: testPassword,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "jdoe", result.User.Username)
		assert.NotNil(t, user.LastLoginAt, "login must be recorded")
		repo.AssertExpectations(t)
	})

	t.Run("unknown username", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)

		repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

		_, err := svc.Authenticate(context.Background(), LoginInput{Username: "ghost", Password: testPassword})
		assert.ErrorIs(t, err, shared.ErrAuthenticationFailed)
	})

	t.Run("inactive account", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)
		user := newTestUser(t, testPassword)
		require.NoError(t, user.Deactivate())

		repo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)

		_, err := svc.Authenticate(context.Background(), LoginInput{Username: "jdoe", Password: testPassword})
		assert.ErrorIs(t, err, shared.ErrAuthenticationFailed)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)
		user := newTestUser(t, testPassword)

		repo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)

		_, err := svc.Authenticate(context.Background(), LoginInput{Username: "jdoe", Password: "wrong"})
		assert.ErrorIs(t, err, shared.ErrAuthenticationFailed)
		assert.Nil(t, user.LastLoginAt, "failed login must not be recorded")
	})

	t.Run("corrupt stored credentials count as mismatch", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)
		user := newTestUser(t, testPassword)
		require.NoError(t, user.SetCredentials("%%% not base64 %%%", user.Salt))

		repo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)

		_, err := svc.Authenticate(context.Background(), LoginInput{Username: "jdoe", Password: testPassword})
		assert.ErrorIs(t, err, shared.ErrAuthenticationFailed)
	})

	t.Run("login survives a failed last-login write", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)
		user := newTestUser(t, testPassword)

		repo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(assert.AnError)

		result, err := svc.Authenticate(context.Background(), LoginInput{Username: "jdoe", Password: testPassword})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("rotates the token pair", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)
		user := newTestUser(t, testPassword)

		repo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)
		login, err := svc.Authenticate(context.Background(), LoginInput{Username: "jdoe", Password: testPassword})
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		refreshed, err := svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)

		_, err := svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: "garbage"})
		assert.Error(t, err)
	})

	t.Run("rejects refresh for deactivated account", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)
		user := newTestUser(t, testPassword)

		repo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)
		login, err := svc.Authenticate(context.Background(), LoginInput{Username: "jdoe", Password: testPassword})
		require.NoError(t, err)

		require.NoError(t, user.Deactivate())
		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		_, err = svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: login.RefreshToken})
		assert.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("replaces credentials after verifying the current password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)
		user := newTestUser(t, testPassword)
		oldHash, oldSalt := user.PasswordHash, user.Salt

		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		err := svc.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:          user.ID,
			CurrentPassword: testPassword,
			NewPassword:     "a-brand-new-password",
		})

		require.NoError(t, err)
		assert.NotEqual(t, oldHash, user.PasswordHash)
		assert.NotEqual(t, oldSalt, user.Salt)
		repo.AssertExpectations(t)
	})

	t.Run("wrong current password leaves credentials unchanged", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)
		user := newTestUser(t, testPassword)
		oldHash, oldSalt := user.PasswordHash, user.Salt

		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		err := svc.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:          user.ID,
			CurrentPassword: "wrong",
			NewPassword:     "a-brand-new-password",
		})

		assert.ErrorIs(t, err, shared.ErrAuthenticationFailed)
		assert.Equal(t, oldHash, user.PasswordHash)
		assert.Equal(t, oldSalt, user.Salt)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects short new password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)
		user := newTestUser(t, testPassword)

		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		err := svc.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:          user.ID,
			CurrentPassword: testPassword,
			NewPassword:     "short",
		})
		assert.Error(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(t, repo)
		userID := uuid.New()

		repo.On("FindByID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		err := svc.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:          userID,
			CurrentPassword: testPassword,
			NewPassword:     "a-brand-new-password",
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(t, repo)
	user := newTestUser(t, testPassword)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	info, err := svc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", info.Username)

	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	_, err = svc.GetCurrentUser(context.Background(), missing)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

// ============================================
// Username folding over the real repository
// ============================================

func TestAuthService_Authenticate_MixedCaseUsername(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	repo := persistence.NewGormUserRepository(db)
	ctx := context.Background()

	users := NewUserService(repo, newTestHasher(t), zap.NewNop())
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "bizdesk-test",
	})
	svc := NewAuthService(repo, newTestHasher(t), jwtService, zap.NewNop())

	created, err := users.CreateUser(ctx, CreateUserInput{
		Username: "JDoe",
		Password: testPassword,
		Role:     identity.RoleStaff,
	})
	require.NoError(t, err)
	assert.Equal(t, "jdoe", created.Username)

	t.Run("login with the spelling used at registration", func(t *testing.T) {
		result, err := svc.Authenticate(ctx, LoginInput{Username: "JDoe", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, "jdoe", result.User.Username)
	})

	t.Run("login with the stored form", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, LoginInput{Username: "jdoe", Password: testPassword})
		require.NoError(t, err)
	})

	t.Run("duplicate check folds case", func(t *testing.T) {
		_, err := users.CreateUser(ctx, CreateUserInput{
			Username: "JDOE",
			Password: testPassword,
			Role:     identity.RoleStaff,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
	})
}
