package identity

import (
	"context"

	"github.com/bizdesk/backend/internal/domain/identity"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/infrastructure/security"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user administration operations
type UserService struct {
	userRepo identity.UserRepository
	hasher   *security.PasswordHasher
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, hasher *security.PasswordHasher, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

// CreateUser creates a new user with freshly generated credentials
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already taken")
	}

	if len(input.Password) < MinPasswordLength {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		s.logger.Error("Failed to generate salt", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}
	hash := s.hasher.HashPassword(input.Password, salt)

	user, err := identity.NewUser(input.Username,
		security.EncodeToString(hash), security.EncodeToString(salt), input.Role)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		if err := user.SetFullName(input.FullName); err != nil {
			return nil, err
		}
	}
	if input.Email != "" {
		if err := user.SetEmail(input.Email); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()))

	info := userInfoFromDomain(user)
	return &info, nil
}

// UpdateUser updates a user's profile fields
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		if err := user.SetFullName(*input.FullName); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.Role != nil {
		if err := user.SetRole(*input.Role); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	info := userInfoFromDomain(user)
	return &info, nil
}

// GetUser returns a single user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := userInfoFromDomain(user)
	return &info, nil
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]UserInfo, error) {
	users, err := s.userRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = userInfoFromDomain(&users[i])
	}
	return infos, nil
}

// ActivateUser re-enables a deactivated user
func (s *UserService) ActivateUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.Activate(); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, user)
}

// DeactivateUser disables a user without deleting the record
func (s *UserService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, user)
}

// DeleteUser removes a user permanently
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}
