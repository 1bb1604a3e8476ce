package identity

import (
	"time"

	"github.com/bizdesk/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned to callers
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	FullName    string
	Email       string
	Role        identity.Role
	Active      bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// CreateUserInput contains the input for user creation
type CreateUserInput struct {
	Username string
	Password string
	FullName string
	Email    string
	Role     identity.Role
}

// UpdateUserInput contains the input for user profile updates
type UpdateUserInput struct {
	UserID   uuid.UUID
	FullName *string
	Email    *string
	Role     *identity.Role
}

// userInfoFromDomain maps a domain user to the outward-facing info struct
func userInfoFromDomain(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        u.Role,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
