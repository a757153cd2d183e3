package repository

import (
	"errors"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevealOutcome is the state after a reveal transition
type RevealOutcome struct {
	Status             string
	SenderRevealed     bool
	ReceiverRevealed   bool
	MutualReveal       bool
	ConversationID     string
	ConversationReused bool
}

// MatchRepository owns the multi-step reveal transitions. Each transition
// runs in a single transaction with the confession row locked, so two
// concurrent reveals cannot both observe "not yet mutual" and create
// duplicate conversations.
type MatchRepository interface {
	ApplyReveal(confessionID string, asSender bool) (*RevealOutcome, error)
	ApproveCommentReveal(commentID, confessionSenderID, commentAuthorID string) (conversationID string, reused bool, err error)
	FindOrCreateConversation(userA, userB string) (*domain.Conversation, bool, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new MatchRepository
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// ApplyReveal sets the actor's reveal flag and, when the reveal becomes
// mutual, provisions the conversation and moves the confession to
// CONNECTED. Authorization is the caller's job; this only performs the
// state transition.
func (r *matchRepository) ApplyReveal(confessionID string, asSender bool) (*RevealOutcome, error) {
	var outcome RevealOutcome

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var confession domain.Confession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", confessionID).
			First(&confession).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrConfessionNotFound
			}
			return err
		}

		if asSender {
			confession.SenderRevealed = true
		} else {
			confession.ReceiverRevealed = true
		}

		outcome.SenderRevealed = confession.SenderRevealed
		outcome.ReceiverRevealed = confession.ReceiverRevealed
		outcome.MutualReveal = confession.IsMutual()

		updates := map[string]interface{}{
			"sender_revealed":   confession.SenderRevealed,
			"receiver_revealed": confession.ReceiverRevealed,
		}

		switch {
		case confession.IsMutual() && confession.TargetUserID != nil:
			conversation, reused, err := findOrCreatePair(tx, confession.SenderID, *confession.TargetUserID)
			if err != nil {
				return err
			}
			updates["status"] = domain.ConfessionConnected
			updates["chat_channel_id"] = conversation.ID
			outcome.Status = domain.ConfessionConnected
			outcome.ConversationID = conversation.ID
			outcome.ConversationReused = reused

		case confession.SenderRevealed || confession.ReceiverRevealed:
			updates["status"] = domain.ConfessionRevealed
			outcome.Status = domain.ConfessionRevealed
			// Re-expose an already provisioned conversation so repeated
			// reveals stay idempotent
			if confession.ChatChannelID != nil {
				outcome.ConversationID = *confession.ChatChannelID
				outcome.ConversationReused = true
			}

		default:
			outcome.Status = confession.Status
		}

		return tx.Model(&domain.Confession{}).
			Where("id = ?", confessionID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// ApproveCommentReveal flips revealApproved and provisions the
// conversation between the confession owner and the comment author.
func (r *matchRepository) ApproveCommentReveal(commentID, confessionSenderID, commentAuthorID string) (string, bool, error) {
	var conversationID string
	var reused bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var comment domain.Comment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", commentID).
			First(&comment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrCommentNotFound
			}
			return err
		}

		if !comment.RevealRequested {
			return common.ErrNoRevealRequest
		}

		if err := tx.Model(&domain.Comment{}).
			Where("id = ?", commentID).
			Update("reveal_approved", true).Error; err != nil {
			return err
		}

		conversation, existing, err := findOrCreatePair(tx, confessionSenderID, commentAuthorID)
		if err != nil {
			return err
		}
		conversationID = conversation.ID
		reused = existing
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return conversationID, reused, nil
}

// FindOrCreateConversation provisions at most one conversation for an
// unordered user pair
func (r *matchRepository) FindOrCreateConversation(userA, userB string) (*domain.Conversation, bool, error) {
	var conversation *domain.Conversation
	var reused bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		conversation, reused, err = findOrCreatePair(tx, userA, userB)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return conversation, reused, nil
}

// findOrCreatePair looks up a conversation for the unordered pair, checking
// both column orders, and creates one when none exists. The lookup takes a
// row lock so concurrent callers serialize on an existing row.
func findOrCreatePair(tx *gorm.DB, userA, userB string) (*domain.Conversation, bool, error) {
	var existing domain.Conversation
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userA, userB, userB, userA).
		First(&existing).Error
	if err == nil {
		return &existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	conversation := &domain.Conversation{
		User1ID: userA,
		User2ID: userB,
		Status:  domain.ConversationActive,
	}
	if err := tx.Create(conversation).Error; err != nil {
		return nil, false, err
	}
	return conversation, false, nil
}
