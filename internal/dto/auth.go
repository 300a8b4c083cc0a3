package dto

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
