package repositories

import (
	"context"

	"github.com/nortis-app/nortis-backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username, for login.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// username is already taken.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
