package handler

import (
	"errors"
	"net/http"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignupRequest signup request
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup handles POST /api/auth/signup
// @Summary Register a new account with a campus email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 201 {object} common.APIResponse{data=domain.UserSummary}
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, err)
		return
	}

	user, err := h.service.Signup(req.Email, req.Password)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	common.CreatedResponse(c, user.Summary())
}

// Login handles POST /api/auth/login
// @Summary Authenticate and issue tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} common.APIResponse{data=service.LoginResponse}
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, err)
		return
	}

	response, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: response})
}

// handleAuthError maps auth service errors to HTTP responses
func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		common.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, common.ErrEmailTaken):
		common.ErrorResponse(c, http.StatusConflict, "An account with this email already exists", err)
	case errors.Is(err, common.ErrEmailDomain):
		common.ErrorResponse(c, http.StatusBadRequest, "Only campus email addresses are allowed", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
