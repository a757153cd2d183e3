package repository

import (
	"errors"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"gorm.io/gorm"
)

// ConversationRepository defines conversation-store operations
type ConversationRepository interface {
	FindByID(id string) (*domain.Conversation, error)
	FindByIDWithUsers(id string) (*domain.Conversation, error)
	FindActiveByUser(userID string) ([]domain.Conversation, error)
	Create(conversation *domain.Conversation) error
	UpdateStatus(id, status string) error
	DeleteWithMessages(id string) error
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) FindByID(id string) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.db.Where("id = ?", id).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) FindByIDWithUsers(id string) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.db.Preload("User1").Preload("User2").
		Where("id = ?", id).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) FindActiveByUser(userID string) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	err := r.db.Preload("User1").Preload("User2").
		Where("(user1_id = ? OR user2_id = ?) AND status = ?",
			userID, userID, domain.ConversationActive).
		Find(&conversations).Error
	return conversations, err
}

func (r *conversationRepository) Create(conversation *domain.Conversation) error {
	return r.db.Create(conversation).Error
}

func (r *conversationRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&domain.Conversation{}).Where("id = ?", id).
		Update("status", status).Error
}

// DeleteWithMessages removes all messages then the conversation row.
// No soft delete.
func (r *conversationRepository) DeleteWithMessages(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&domain.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Conversation{}).Error
	})
}
