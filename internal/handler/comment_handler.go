package handler

import (
	"errors"
	"net/http"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/middleware"
	"github.com/crushconfessions/crushconfessions-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	service      service.CommentService
	matchService service.MatchService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(service service.CommentService, matchService service.MatchService) *CommentHandler {
	return &CommentHandler{
		service:      service,
		matchService: matchService,
	}
}

// CreateCommentRequest comment creation request
type CreateCommentRequest struct {
	Content         string  `json:"content" binding:"required,min=1,max=500"`
	ParentCommentID *string `json:"parent_comment_id" binding:"omitempty,uuid"`
}

// CommentRevealRequest comment identity reveal request
type CommentRevealRequest struct {
	Action string `json:"action" binding:"required,oneof=request approve"`
}

// Create handles POST /api/confessions/:id/comments
// @Summary Comment on a confession, optionally as a reply
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Confession ID"
// @Param request body CreateCommentRequest true "Comment payload"
// @Success 201 {object} common.APIResponse{data=domain.CommentResponse}
// @Router /confessions/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, err)
		return
	}

	comment, err := h.service.CreateComment(c.Param("id"), userID, req.Content, req.ParentCommentID)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	common.CreatedResponse(c, comment)
}

// List handles GET /api/confessions/:id/comments
// @Summary List a confession's comments with one level of replies
// @Tags comments
// @Produce json
// @Param id path string true "Confession ID"
// @Success 200 {object} common.APIResponse{data=[]domain.CommentResponse}
// @Router /confessions/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	comments, err := h.service.ListComments(c.Param("id"), userID)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: comments})
}

// ToggleLike handles POST /api/comments/:id/like
// @Summary Toggle a like on a comment
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} common.APIResponse{data=domain.LikeToggleResponse}
// @Router /comments/{id}/like [post]
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	result, err := h.service.ToggleLike(c.Param("id"), userID)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// Reveal handles POST /api/comments/:id/reveal
// @Summary Request or approve a comment identity reveal
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param request body CommentRevealRequest true "Action: request (comment author) or approve (confession owner)"
// @Success 200 {object} common.APIResponse{data=domain.CommentRevealResponse}
// @Router /comments/{id}/reveal [post]
func (h *CommentHandler) Reveal(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req CommentRevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, err)
		return
	}

	var (
		result interface{}
		err    error
	)
	if req.Action == "request" {
		result, err = h.matchService.RequestCommentReveal(c.Param("id"), userID)
	} else {
		result, err = h.matchService.ApproveCommentReveal(c.Param("id"), userID)
	}
	if err != nil {
		handleCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// handleCommentError maps comment service errors to HTTP responses
func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrConfessionNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Confession not found", err)
	case errors.Is(err, common.ErrCommentNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Comment not found", err)
	case errors.Is(err, common.ErrParentNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Parent comment not found", err)
	case errors.Is(err, common.ErrParentMismatch):
		common.ErrorResponse(c, http.StatusBadRequest, "Parent comment belongs to a different confession", err)
	case errors.Is(err, common.ErrReplyDepth):
		common.ErrorResponse(c, http.StatusBadRequest, "Replies cannot be nested further", err)
	case errors.Is(err, common.ErrNoRevealRequest):
		common.ErrorResponse(c, http.StatusBadRequest, "The comment author has not requested a reveal", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "You are not allowed to perform this action", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
