package identity

import (
	"context"

	"github.com/bizdesk/backend/internal/domain/identity"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/infrastructure/auth"
	"github.com/bizdesk/backend/internal/infrastructure/security"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	hasher     *security.PasswordHasher
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	hasher *security.PasswordHasher,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Authenticate verifies a username/password pair and issues tokens.
// An unknown username, an inactive account, and a wrong password all
// produce the same error so callers cannot probe which usernames exist.
func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("username", input.Username))
		return nil, shared.ErrAuthenticationFailed
	}

	if !user.IsActive() {
		s.logger.Warn("Login attempt for inactive account", zap.String("username", input.Username))
		return nil, shared.ErrAuthenticationFailed
	}

	if !s.verifyPassword(user, input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, shared.ErrAuthenticationFailed
	}

	user.RecordLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Don't fail the login on a bookkeeping write
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", input.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  userInfoFromDomain(user),
	}, nil
}

// RefreshToken refreshes the access token using a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
	if !user.IsActive() {
		s.logger.Warn("Token refresh for inactive user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Username, user.Role.String())
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// GetCurrentUser retrieves the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	info := userInfoFromDomain(user)
	return &info, nil
}

// ChangePassword changes a user's password after re-verifying the current one.
// The new salt and hash replace the stored pair together; a failed
// verification leaves the stored credentials untouched.
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.ErrNotFound
	}

	if !s.verifyPassword(user, input.CurrentPassword) {
		s.logger.Warn("Password change with wrong current password",
			zap.String("user_id", input.UserID.String()))
		return shared.ErrAuthenticationFailed
	}

	if len(input.NewPassword) < MinPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		s.logger.Error("Failed to generate salt", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}
	hash := s.hasher.HashPassword(input.NewPassword, salt)

	if err := user.SetCredentials(security.EncodeToString(hash), security.EncodeToString(salt)); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to persist password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

// verifyPassword checks a candidate password against the user's stored
// credentials. Undecodable stored values count as a mismatch.
func (s *AuthService) verifyPassword(user *identity.User, password string) bool {
	storedHash, err := security.DecodeString(user.PasswordHash)
	if err != nil {
		s.logger.Error("Corrupt stored password hash", zap.String("user_id", user.ID.String()))
		return false
	}
	storedSalt, err := security.DecodeString(user.Salt)
	if err != nil {
		s.logger.Error("Corrupt stored salt", zap.String("user_id", user.ID.String()))
		return false
	}
	return s.hasher.VerifyPassword(password, storedHash, storedSalt)
}
