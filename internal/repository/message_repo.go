package repository

import (
	"errors"

	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository message data access interface
type MessageRepository interface {
	Create(message *domain.Message) error
	FindByConversation(conversationID string) ([]domain.Message, error)
	FindLastByConversation(conversationID string) (*domain.Message, error)
	CountUnread(conversationID, viewerID string) (int64, error)
	CountUnreadIn(conversationIDs []string, viewerID string) (int64, error)
	// MarkConversationRead flips readStatus on every unread message not
	// authored by viewerID
	MarkConversationRead(conversationID, viewerID string) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *domain.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) FindByConversation(conversationID string) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("timestamp ASC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) FindLastByConversation(conversationID string) (*domain.Message, error) {
	var message domain.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("timestamp DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) CountUnread(conversationID, viewerID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_status = ?",
			conversationID, viewerID, false).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) CountUnreadIn(conversationIDs []string, viewerID string) (int64, error) {
	if len(conversationIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("conversation_id IN ? AND sender_id <> ? AND read_status = ?",
			conversationIDs, viewerID, false).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) MarkConversationRead(conversationID, viewerID string) error {
	return r.db.Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_status = ?",
			conversationID, viewerID, false).
		Update("read_status", true).Error
}
