package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/debatetab/tab-system/models"
	"github.com/debatetab/tab-system/repositories"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type RegisterInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	// IsAdmin answers role checks for the authorization middleware,
	// consulting the TTL cache before the database.
	IsAdmin(ctx context.Context, userID int) (bool, error)
	// PromoteToAdmin changes the user's role and drops the stale cache
	// entry so the change is visible immediately.
	PromoteToAdmin(ctx context.Context, userID int) error
}

type authService struct {
	userRepo   repositories.UserRepository
	adminCache *AdminStatusCache
}

func NewAuthService(userRepo repositories.UserRepository, adminCache *AdminStatusCache) AuthService {
	return &authService{
		userRepo:   userRepo,
		adminCache: adminCache,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:     input.FullName,
		Email:        input.Email,
		Role:         models.UserRoleSpeaker,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) IsAdmin(ctx context.Context, userID int) (bool, error) {
	if isAdmin, ok := s.adminCache.Get(userID); ok {
		return isAdmin, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to load user %d for admin check: %w", userID, err)
	}

	isAdmin := user.Role == models.UserRoleAdmin
	s.adminCache.Set(userID, isAdmin)
	return isAdmin, nil
}

func (s *authService) PromoteToAdmin(ctx context.Context, userID int) error {
	if err := s.userRepo.UpdateRole(ctx, userID, models.UserRoleAdmin); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update role for user %d: %w", userID, err)
	}
	s.adminCache.Invalidate(userID)
	return nil
}
