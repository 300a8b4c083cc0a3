package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nortis-app/nortis-backend/internal/apperrors"
	"github.com/nortis-app/nortis-backend/internal/core/domain"
	portsrepo "github.com/nortis-app/nortis-backend/internal/core/ports/repositories"
	"github.com/nortis-app/nortis-backend/internal/dto"
	"github.com/nortis-app/nortis-backend/internal/utils"
)

// UserService handles registration and authentication of account holders.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("username %q is taken: %w", req.Username, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// AuthenticateUser checks the credentials and returns the user on success.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
