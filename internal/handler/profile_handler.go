package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"github.com/crushconfessions/crushconfessions-backend/internal/middleware"
	"github.com/crushconfessions/crushconfessions-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles self-profile HTTP requests
type ProfileHandler struct {
	authService       service.AuthService
	confessionService service.ConfessionService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(authService service.AuthService, confessionService service.ConfessionService) *ProfileHandler {
	return &ProfileHandler{
		authService:       authService,
		confessionService: confessionService,
	}
}

// UpdateProfileRequest profile update request
type UpdateProfileRequest struct {
	DisplayName    *string `json:"display_name" binding:"omitempty,min=1,max=50"`
	ProfilePicture *string `json:"profile_picture" binding:"omitempty,max=500"`
}

// GetProfile handles GET /api/profile
// @Summary Get the caller's profile with sent and received confessions
// @Tags profile
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.ProfileResponse}
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		handleProfileError(c, err)
		return
	}

	sent, err := h.confessionService.SentBy(userID)
	if err != nil {
		handleProfileError(c, err)
		return
	}

	received, err := h.confessionService.ReceivedBy(userID)
	if err != nil {
		handleProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: domain.ProfileResponse{
		ID:                  user.ID,
		Email:               user.Email,
		DisplayName:         user.DisplayName,
		ProfilePicture:      user.ProfilePicture,
		RegistrationDate:    user.RegistrationDate.Format(time.RFC3339),
		SentConfessions:     sent,
		ReceivedConfessions: received,
	}})
}

// UpdateProfile handles PUT /api/profile
// @Summary Update display name or profile picture
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} common.APIResponse{data=domain.UserSummary}
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, err)
		return
	}

	user, err := h.authService.UpdateProfile(userID, req.DisplayName, req.ProfilePicture)
	if err != nil {
		handleProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: user.Summary()})
}

// handleProfileError maps profile errors to HTTP responses
func handleProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "User not found", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
