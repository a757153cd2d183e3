package handler

import (
	"errors"
	"net/http"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/middleware"
	"github.com/crushconfessions/crushconfessions-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ConfessionHandler handles confession HTTP requests
type ConfessionHandler struct {
	service      service.ConfessionService
	matchService service.MatchService
}

// NewConfessionHandler creates a new ConfessionHandler
func NewConfessionHandler(service service.ConfessionService, matchService service.MatchService) *ConfessionHandler {
	return &ConfessionHandler{
		service:      service,
		matchService: matchService,
	}
}

// CreateConfessionRequest confession creation request
type CreateConfessionRequest struct {
	Content         string `json:"content" binding:"required,min=10,max=1000"`
	TargetUserEmail string `json:"target_user_email" binding:"omitempty,email"`
	Visibility      string `json:"visibility" binding:"required,oneof=PUBLIC PRIVATE"`
}

// Create handles POST /api/confessions
// @Summary Post a new confession
// @Tags confessions
// @Accept json
// @Produce json
// @Param request body CreateConfessionRequest true "Confession payload"
// @Success 201 {object} common.APIResponse{data=domain.Confession}
// @Router /confessions [post]
func (h *ConfessionHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req CreateConfessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, err)
		return
	}

	confession, err := h.service.Create(userID, service.CreateConfessionInput{
		Content:         req.Content,
		TargetUserEmail: req.TargetUserEmail,
		Visibility:      req.Visibility,
	})
	if err != nil {
		handleConfessionError(c, err)
		return
	}

	common.CreatedResponse(c, confession)
}

// Feed handles GET /api/confessions?feed=all|sent|received&confession_id=...
// @Summary List visible confessions for the caller
// @Tags confessions
// @Produce json
// @Param feed query string false "Feed filter: all, sent or received" default(all)
// @Param confession_id query string false "Return a single confession by ID"
// @Success 200 {object} common.APIResponse{data=[]domain.ConfessionResponse}
// @Router /confessions [get]
func (h *ConfessionHandler) Feed(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	feed := c.DefaultQuery("feed", "all")
	confessionID := c.Query("confession_id")

	result, err := h.service.Feed(userID, feed, confessionID)
	if err != nil {
		handleConfessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// Delete handles DELETE /api/confessions/:id
// @Summary Delete a confession you sent
// @Tags confessions
// @Produce json
// @Param id path string true "Confession ID"
// @Success 200 {object} common.APIResponse
// @Router /confessions/{id} [delete]
func (h *ConfessionHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	if err := h.service.Delete(c.Param("id"), userID); err != nil {
		handleConfessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Message: "Confession deleted"})
}

// ToggleLike handles POST /api/confessions/:id/like
// @Summary Toggle a like on a confession
// @Tags confessions
// @Produce json
// @Param id path string true "Confession ID"
// @Success 200 {object} common.APIResponse{data=domain.LikeToggleResponse}
// @Router /confessions/{id}/like [post]
func (h *ConfessionHandler) ToggleLike(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	result, err := h.service.ToggleLike(c.Param("id"), userID)
	if err != nil {
		handleConfessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// Reveal handles POST /api/confessions/:id/reveal
// @Summary Reveal interest in a confession; a mutual reveal opens a chat
// @Tags confessions
// @Produce json
// @Param id path string true "Confession ID"
// @Success 200 {object} common.APIResponse{data=domain.RevealResponse}
// @Router /confessions/{id}/reveal [post]
func (h *ConfessionHandler) Reveal(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	result, err := h.matchService.RevealConfessionInterest(c.Param("id"), userID)
	if err != nil {
		handleConfessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// handleConfessionError maps confession service errors to HTTP responses
func handleConfessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrConfessionNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Confession not found", err)
	case errors.Is(err, common.ErrTargetNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Target user not found", err)
	case errors.Is(err, common.ErrPrivateNeedsTarget):
		common.ErrorResponse(c, http.StatusBadRequest, "Private confessions need a registered target user", err)
	case errors.Is(err, common.ErrEmailDomain):
		common.ErrorResponse(c, http.StatusBadRequest, "Only campus email addresses are allowed", err)
	case errors.Is(err, common.ErrSelfReveal):
		common.ErrorResponse(c, http.StatusBadRequest, "You cannot reveal interest in your own confession", err)
	case errors.Is(err, common.ErrNotConfessionParty):
		common.ErrorResponse(c, http.StatusForbidden, "Only the sender or the target may reveal interest", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "You can only delete your own confessions", err)
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
