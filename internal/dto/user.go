package dto

import (
	"time"

	"github.com/nortis-app/nortis-backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a new user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// UserResponse defines the data returned for a user. The password hash
// never crosses the boundary.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
