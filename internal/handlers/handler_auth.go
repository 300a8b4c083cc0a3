package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/nortis-app/nortis-backend/internal/apperrors"
	portssvc "github.com/nortis-app/nortis-backend/internal/core/ports/services"
	"github.com/nortis-app/nortis-backend/internal/dto"
	"github.com/nortis-app/nortis-backend/internal/middleware"
	"github.com/nortis-app/nortis-backend/internal/platform/config"
	"github.com/nortis-app/nortis-backend/internal/utils"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// authHandler handles registration and login.
type authHandler struct {
	userService portssvc.UserSvcFacade
	cfg         *config.Config
}

// registerAuthRoutes sets up the public authentication routes. Login is
// rate limited per IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, userService portssvc.UserSvcFacade) {
	h := &authHandler{userService: userService, cfg: cfg}

	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
		auth.POST("/register", h.register)
	}
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		logger.Error("Failed to authenticate user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to authenticate"})
		return
	}

	token, err := utils.GenerateJWT(user.UserID, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// register godoc
// @Summary Register new user
// @Description Creates a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username already taken"})
			return
		}
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}

	logger.Info("User registered", slog.String("new_user_id", newUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}
