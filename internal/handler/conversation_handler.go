package handler

import (
	"errors"
	"net/http"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/middleware"
	"github.com/crushconfessions/crushconfessions-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ConversationHandler handles conversation and messaging HTTP requests
type ConversationHandler struct {
	service service.ConversationService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(service service.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// CreateConversationRequest conversation creation request
type CreateConversationRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required,uuid"`
}

// SendMessageRequest message send request
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// Create handles POST /api/conversations
// @Summary Open a conversation with another user, reusing an existing one
// @Tags conversations
// @Accept json
// @Produce json
// @Param request body CreateConversationRequest true "Target user"
// @Success 201 {object} common.APIResponse{data=service.CreateConversationResult}
// @Router /conversations [post]
func (h *ConversationHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.service.Create(userID, req.TargetUserID)
	if err != nil {
		handleConversationError(c, err)
		return
	}

	if result.AlreadyExists {
		c.JSON(http.StatusOK, common.APIResponse{Data: result})
		return
	}
	common.CreatedResponse(c, result)
}

// List handles GET /api/conversations
// @Summary List the caller's conversations with unread counts
// @Tags conversations
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.ConversationListResponse}
// @Router /conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	result, err := h.service.List(userID)
	if err != nil {
		handleConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// Details handles GET /api/conversations/:id
// @Summary Get conversation details including the caller's block state
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} common.APIResponse{data=domain.ConversationDetails}
// @Router /conversations/{id} [get]
func (h *ConversationHandler) Details(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	result, err := h.service.Details(c.Param("id"), userID)
	if err != nil {
		handleConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// Delete handles DELETE /api/conversations/:id
// @Summary Delete a conversation and its messages
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} common.APIResponse
// @Router /conversations/{id} [delete]
func (h *ConversationHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	if err := h.service.Delete(c.Param("id"), userID); err != nil {
		handleConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Message: "Conversation deleted"})
}

// ListMessages handles GET /api/conversations/:id/messages
// @Summary List messages and mark received ones as read
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} common.APIResponse{data=[]domain.MessageResponse}
// @Router /conversations/{id}/messages [get]
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	messages, err := h.service.ListMessages(c.Param("id"), userID)
	if err != nil {
		handleConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: messages})
}

// SendMessage handles POST /api/conversations/:id/messages
// @Summary Send a message in a conversation
// @Tags conversations
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body SendMessageRequest true "Message payload"
// @Success 201 {object} common.APIResponse{data=domain.MessageResponse}
// @Router /conversations/{id}/messages [post]
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, err)
		return
	}

	message, err := h.service.SendMessage(c.Param("id"), userID, req.Content)
	if err != nil {
		handleConversationError(c, err)
		return
	}

	common.CreatedResponse(c, message)
}

// ToggleBlock handles POST /api/conversations/:id/block
// @Summary Toggle a block on the other participant
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} common.APIResponse{data=domain.BlockToggleResponse}
// @Router /conversations/{id}/block [post]
func (h *ConversationHandler) ToggleBlock(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	result, err := h.service.ToggleBlock(c.Param("id"), userID)
	if err != nil {
		handleConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// SetTyping handles POST /api/conversations/:id/typing
// @Summary Record that the caller is typing
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} common.APIResponse
// @Router /conversations/{id}/typing [post]
func (h *ConversationHandler) SetTyping(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	if err := h.service.SetTyping(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Message: "Typing status recorded"})
}

// GetTyping handles GET /api/conversations/:id/typing
// @Summary List users currently typing, excluding the caller
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} common.APIResponse{data=domain.TypingStatusResponse}
// @Router /conversations/{id}/typing [get]
func (h *ConversationHandler) GetTyping(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	result, err := h.service.GetTypingUsers(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// UnreadCount handles GET /api/conversations/unread
// @Summary Total unread messages across all conversations
// @Tags conversations
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /conversations/unread [get]
func (h *ConversationHandler) UnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	total, err := h.service.UnreadTotal(userID)
	if err != nil {
		handleConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"total_unread": total}})
}

// handleConversationError maps conversation service errors to HTTP responses
func handleConversationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrConversationNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Conversation not found", err)
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrTargetNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "User not found", err)
	case errors.Is(err, common.ErrNotParticipant):
		common.ErrorResponse(c, http.StatusForbidden, "You are not a participant in this conversation", err)
	case errors.Is(err, common.ErrSelfConversation):
		common.ErrorResponse(c, http.StatusBadRequest, "You cannot start a conversation with yourself", err)
	case errors.Is(err, common.ErrConversationBlocked):
		common.ErrorResponse(c, http.StatusForbidden, "Messaging is blocked in this conversation", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
