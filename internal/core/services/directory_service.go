package services

import (
	"context"
	"errors"

	"projectgate/internal/adapters/persistence/models"
	"projectgate/internal/adapters/persistence/repositories"
	"projectgate/internal/core/domain"

	"gorm.io/gorm"
)

// DirectoryService implements UserDirectory over the shared users table
type DirectoryService struct {
	userRepo repositories.UserRepository
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(userRepo repositories.UserRepository) *DirectoryService {
	return &DirectoryService{userRepo: userRepo}
}

// GetByID resolves a user by ID
func (s *DirectoryService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(user), nil
}

func toDomainUser(u *models.User) *domain.User {
	return &domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      domain.Role(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// DirectoryAuthorizer implements Authorizer against the user directory
type DirectoryAuthorizer struct {
	directory UserDirectory
}

// NewDirectoryAuthorizer creates a new directory-backed authorizer
func NewDirectoryAuthorizer(directory UserDirectory) *DirectoryAuthorizer {
	return &DirectoryAuthorizer{directory: directory}
}

// RequireAdmin returns nil only when the user exists, is active, and holds
// the ADMIN role
func (a *DirectoryAuthorizer) RequireAdmin(ctx context.Context, userID uint) error {
	user, err := a.directory.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	if !user.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
