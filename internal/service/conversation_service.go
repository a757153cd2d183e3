package service

import (
	"context"
	"time"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"github.com/crushconfessions/crushconfessions-backend/internal/presence"
	"github.com/crushconfessions/crushconfessions-backend/internal/repository"
)

// CreateConversationResult reports a created or reused conversation
type CreateConversationResult struct {
	ConversationID string `json:"conversation_id"`
	AlreadyExists  bool   `json:"already_exists"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// ConversationService conversation lifecycle, messaging, read tracking
// and typing presence
type ConversationService interface {
	Create(userID, targetUserID string) (*CreateConversationResult, error)
	List(userID string) (*domain.ConversationListResponse, error)
	Details(conversationID, userID string) (*domain.ConversationDetails, error)
	Delete(conversationID, userID string) error
	SendMessage(conversationID, senderID, content string) (*domain.MessageResponse, error)
	ListMessages(conversationID, viewerID string) ([]domain.MessageResponse, error)
	ToggleBlock(conversationID, actingUserID string) (*domain.BlockToggleResponse, error)
	UnreadTotal(userID string) (int64, error)
	SetTyping(ctx context.Context, conversationID, userID string) error
	GetTypingUsers(ctx context.Context, conversationID, viewerID string) (*domain.TypingStatusResponse, error)
}

type conversationService struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	blockRepo        repository.BlockRepository
	userRepo         repository.UserRepository
	matchRepo        repository.MatchRepository
	tracker          presence.Tracker
}

// NewConversationService creates a new ConversationService
func NewConversationService(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	blockRepo repository.BlockRepository,
	userRepo repository.UserRepository,
	matchRepo repository.MatchRepository,
	tracker presence.Tracker,
) ConversationService {
	return &conversationService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		blockRepo:        blockRepo,
		userRepo:         userRepo,
		matchRepo:        matchRepo,
		tracker:          tracker,
	}
}

// Create provisions a conversation with another user, reusing an
// existing one for the unordered pair
func (s *conversationService) Create(userID, targetUserID string) (*CreateConversationResult, error) {
	if userID == targetUserID {
		return nil, common.ErrSelfConversation
	}
	if _, err := s.userRepo.FindByID(targetUserID); err != nil {
		return nil, common.ErrTargetNotFound
	}

	conversation, reused, err := s.matchRepo.FindOrCreateConversation(userID, targetUserID)
	if err != nil {
		return nil, err
	}

	result := &CreateConversationResult{
		ConversationID: conversation.ID,
		AlreadyExists:  reused,
	}
	if !reused {
		result.CreatedAt = conversation.StartTimestamp.Format(time.RFC3339)
	}
	return result, nil
}

// List returns the user's ACTIVE conversations with last message and
// unread counts, plus the unread total across all of them
func (s *conversationService) List(userID string) (*domain.ConversationListResponse, error) {
	conversations, err := s.conversationRepo.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.ConversationResponse, 0, len(conversations))
	var totalUnread int64

	for i := range conversations {
		cv := &conversations[i]

		other := cv.User2
		if cv.User2ID == userID {
			other = cv.User1
		}
		otherSummary := domain.UserSummary{ID: cv.OtherParticipant(userID), DisplayName: "Anonymous"}
		if other != nil {
			otherSummary = other.Summary()
		}

		var last *domain.LastMessage
		lastMsg, err := s.messageRepo.FindLastByConversation(cv.ID)
		if err != nil {
			return nil, err
		}
		if lastMsg != nil {
			last = &domain.LastMessage{
				Content:       lastMsg.Content,
				Timestamp:     lastMsg.Timestamp.Format(time.RFC3339),
				SenderID:      lastMsg.SenderID,
				IsCurrentUser: lastMsg.SenderID == userID,
			}
		}

		unread, err := s.messageRepo.CountUnread(cv.ID, userID)
		if err != nil {
			return nil, err
		}
		totalUnread += unread

		responses = append(responses, domain.ConversationResponse{
			ID:          cv.ID,
			OtherUser:   otherSummary,
			LastMessage: last,
			UnreadCount: unread,
		})
	}

	return &domain.ConversationListResponse{
		Conversations:       responses,
		TotalUnreadMessages: totalUnread,
	}, nil
}

// Details returns the header view of one conversation
func (s *conversationService) Details(conversationID, userID string) (*domain.ConversationDetails, error) {
	conversation, err := s.conversationRepo.FindByIDWithUsers(conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, common.ErrNotParticipant
	}

	other := conversation.User2
	if conversation.User2ID == userID {
		other = conversation.User1
	}
	otherSummary := domain.UserSummary{ID: conversation.OtherParticipant(userID), DisplayName: "Anonymous"}
	if other != nil {
		otherSummary = other.Summary()
	}

	block, err := s.blockRepo.Find(userID, conversation.OtherParticipant(userID))
	if err != nil {
		return nil, err
	}

	return &domain.ConversationDetails{
		ID:        conversation.ID,
		Status:    conversation.Status,
		StartedAt: conversation.StartTimestamp.Format(time.RFC3339),
		OtherUser: otherSummary,
		IsBlocked: block != nil,
	}, nil
}

// Delete removes a conversation and all of its messages. Participant only.
func (s *conversationService) Delete(conversationID, userID string) error {
	conversation, err := s.conversationRepo.FindByID(conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(userID) {
		return common.ErrNotParticipant
	}
	return s.conversationRepo.DeleteWithMessages(conversationID)
}

// SendMessage creates an unread message from a participant. Blocked
// conversations reject sends in both directions.
func (s *conversationService) SendMessage(conversationID, senderID, content string) (*domain.MessageResponse, error) {
	conversation, err := s.conversationRepo.FindByID(conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(senderID) {
		return nil, common.ErrNotParticipant
	}

	blocked, err := s.blockRepo.ExistsEitherDirection(conversation.User1ID, conversation.User2ID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, common.ErrConversationBlocked
	}

	message := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		ReadStatus:     false,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		return nil, err
	}

	return &domain.MessageResponse{
		ID:            message.ID,
		Content:       message.Content,
		Timestamp:     message.Timestamp.Format(time.RFC3339),
		Sender:        sender.Summary(),
		IsCurrentUser: true,
		ReadStatus:    false,
	}, nil
}

// ListMessages returns the conversation's messages oldest first and, as
// a side effect, marks every unread message from the other participant
// as read.
func (s *conversationService) ListMessages(conversationID, viewerID string) ([]domain.MessageResponse, error) {
	conversation, err := s.conversationRepo.FindByID(conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(viewerID) {
		return nil, common.ErrNotParticipant
	}

	messages, err := s.messageRepo.FindByConversation(conversationID)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkConversationRead(conversationID, viewerID); err != nil {
		return nil, err
	}

	responses := make([]domain.MessageResponse, 0, len(messages))
	for i := range messages {
		msg := &messages[i]

		sender := domain.UserSummary{ID: msg.SenderID, DisplayName: "Anonymous"}
		if msg.Sender != nil {
			sender = msg.Sender.Summary()
		}

		responses = append(responses, domain.MessageResponse{
			ID:            msg.ID,
			Content:       msg.Content,
			Timestamp:     msg.Timestamp.Format(time.RFC3339),
			Sender:        sender,
			IsCurrentUser: msg.SenderID == viewerID,
			ReadStatus:    msg.ReadStatus,
		})
	}
	return responses, nil
}

// ToggleBlock blocks or unblocks the other participant. The conversation
// status reflects whether EITHER direction still holds a block, so one
// side unblocking does not unhide a conversation the other side blocked.
func (s *conversationService) ToggleBlock(conversationID, actingUserID string) (*domain.BlockToggleResponse, error) {
	conversation, err := s.conversationRepo.FindByID(conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(actingUserID) {
		return nil, common.ErrNotParticipant
	}

	otherUserID := conversation.OtherParticipant(actingUserID)

	existing, err := s.blockRepo.Find(actingUserID, otherUserID)
	if err != nil {
		return nil, err
	}

	var isBlocked bool
	var message string
	if existing != nil {
		if err := s.blockRepo.Delete(existing.ID); err != nil {
			return nil, err
		}
		isBlocked = false
		message = "User unblocked successfully"
	} else {
		block := &domain.UserBlock{BlockerID: actingUserID, BlockedID: otherUserID}
		if err := s.blockRepo.Create(block); err != nil {
			return nil, err
		}
		isBlocked = true
		message = "User blocked successfully"
	}

	// Status follows the logical OR of both directions
	anyBlock, err := s.blockRepo.ExistsEitherDirection(conversation.User1ID, conversation.User2ID)
	if err != nil {
		return nil, err
	}
	status := domain.ConversationActive
	if anyBlock {
		status = domain.ConversationBlocked
	}
	if err := s.conversationRepo.UpdateStatus(conversationID, status); err != nil {
		return nil, err
	}

	return &domain.BlockToggleResponse{Message: message, IsBlocked: isBlocked}, nil
}

// UnreadTotal returns the unread message count across all of the user's
// ACTIVE conversations
func (s *conversationService) UnreadTotal(userID string) (int64, error) {
	conversations, err := s.conversationRepo.FindActiveByUser(userID)
	if err != nil {
		return 0, err
	}
	ids := make([]string, len(conversations))
	for i := range conversations {
		ids[i] = conversations[i].ID
	}
	return s.messageRepo.CountUnreadIn(ids, userID)
}

// SetTyping records a typing notification from a participant
func (s *conversationService) SetTyping(ctx context.Context, conversationID, userID string) error {
	conversation, err := s.conversationRepo.FindByID(conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(userID) {
		return common.ErrNotParticipant
	}
	return s.tracker.RecordTyping(ctx, conversationID, userID)
}

// GetTypingUsers resolves the display names of users typing right now
func (s *conversationService) GetTypingUsers(ctx context.Context, conversationID, viewerID string) (*domain.TypingStatusResponse, error) {
	typerIDs, err := s.tracker.ActiveTypers(ctx, conversationID, viewerID)
	if err != nil {
		return nil, err
	}

	resp := &domain.TypingStatusResponse{TypingUsers: []domain.TypingUser{}}
	if len(typerIDs) == 0 {
		return resp, nil
	}

	users, err := s.userRepo.FindByIDs(typerIDs)
	if err != nil {
		return nil, err
	}
	for i := range users {
		resp.TypingUsers = append(resp.TypingUsers, domain.TypingUser{
			ID:          users[i].ID,
			DisplayName: users[i].PublicName(),
		})
	}
	resp.IsTyping = len(resp.TypingUsers) > 0
	return resp, nil
}
