package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/domain/shared/validation"
)

// Role represents a user's role. Roles are flat: there is no hierarchy
// beyond equality checks on the role value.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// User represents a user account.
// PasswordHash and Salt are opaque encodings produced by the security
// layer; the domain never interprets them, it only guarantees they are
// replaced together.
type User struct {
	shared.BaseAggregateRoot
	Username     string
	PasswordHash string
	Salt         string
	FullName     string
	Email        string
	Role         Role
	Active       bool
	LastLoginAt  *time.Time
}

// NewUser creates a new active user. The password hash and salt are
// produced by the caller via the security layer.
func NewUser(username, passwordHash, salt string, role Role) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if passwordHash == "" || salt == "" {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Password hash and salt are required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be ADMIN, MANAGER, or STAFF")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          NormalizeUsername(username),
		PasswordHash:      passwordHash,
		Salt:              salt,
		Role:              role,
		Active:            true,
	}, nil
}

// SetFullName sets the user's full name
func (u *User) SetFullName(fullName string) error {
	if fullName != "" && !validation.MaxLen(fullName, 200) {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 200 characters")
	}

	u.FullName = strings.TrimSpace(fullName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	if email != "" {
		if !validation.IsEmail(email) {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
		}
		email = strings.ToLower(strings.TrimSpace(email))
	}

	u.Email = email
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be ADMIN, MANAGER, or STAFF")
	}

	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetCredentials replaces the stored password hash and salt together.
// Both-or-neither: callers never update one without the other.
func (u *User) SetCredentials(passwordHash, salt string) error {
	if passwordHash == "" || salt == "" {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Password hash and salt are required")
	}

	u.PasswordHash = passwordHash
	u.Salt = salt
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// Activate activates the user account
func (u *User) Activate() error {
	if u.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.Active = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Deactivate deactivates the user account
func (u *User) Deactivate() error {
	if !u.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}

	u.Active = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// IsActive returns true if the account is active
func (u *User) IsActive() bool {
	return u.Active
}

// IsAdmin returns true if the user has the ADMIN role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager returns true if the user has the MANAGER role
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// NormalizeUsername folds a username into its stored form. Lookups must
// apply the same folding or a user created as "JDoe" is unreachable.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}
