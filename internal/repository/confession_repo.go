package repository

import (
	"errors"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"gorm.io/gorm"
)

// Feed types for confession listing
const (
	FeedAll      = "all"
	FeedSent     = "sent"
	FeedReceived = "received"
)

// ConfessionRepository defines confession-store operations
type ConfessionRepository interface {
	FindByID(id string) (*domain.Confession, error)
	FindFeed(viewerID, feed, confessionID string) ([]domain.Confession, error)
	FindSentBy(userID string) ([]domain.Confession, error)
	FindReceivedBy(userID string) ([]domain.Confession, error)
	Create(confession *domain.Confession) error
	DeleteCascade(id string) error
}

type confessionRepository struct {
	db *gorm.DB
}

// NewConfessionRepository creates a new ConfessionRepository
func NewConfessionRepository(db *gorm.DB) ConfessionRepository {
	return &confessionRepository{db: db}
}

func (r *confessionRepository) FindByID(id string) (*domain.Confession, error) {
	var confession domain.Confession
	err := r.db.Preload("Sender").Preload("TargetUser").
		Where("id = ?", id).First(&confession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrConfessionNotFound
		}
		return nil, err
	}
	return &confession, nil
}

// FindFeed returns confessions for a feed, newest first. When confessionID
// is set only that confession is returned regardless of the feed type.
func (r *confessionRepository) FindFeed(viewerID, feed, confessionID string) ([]domain.Confession, error) {
	q := r.db.Preload("Sender").Preload("TargetUser").Order("timestamp DESC")

	switch {
	case confessionID != "":
		q = q.Where("id = ?", confessionID)
	case feed == FeedSent:
		q = q.Where("sender_id = ?", viewerID)
	case feed == FeedReceived:
		q = q.Where("target_user_id = ?", viewerID)
	default:
		q = q.Where("visibility = ? OR target_user_id = ?", domain.VisibilityPublic, viewerID)
	}

	var confessions []domain.Confession
	err := q.Find(&confessions).Error
	return confessions, err
}

func (r *confessionRepository) FindSentBy(userID string) ([]domain.Confession, error) {
	var confessions []domain.Confession
	err := r.db.Preload("TargetUser").
		Where("sender_id = ?", userID).
		Order("timestamp DESC").
		Find(&confessions).Error
	return confessions, err
}

func (r *confessionRepository) FindReceivedBy(userID string) ([]domain.Confession, error) {
	var confessions []domain.Confession
	err := r.db.Preload("Sender").
		Where("target_user_id = ? AND status <> ?", userID, domain.ConfessionDeleted).
		Order("timestamp DESC").
		Find(&confessions).Error
	return confessions, err
}

func (r *confessionRepository) Create(confession *domain.Confession) error {
	return r.db.Create(confession).Error
}

// DeleteCascade removes a confession and everything hanging off it:
// comment likes, comments, likes, then the row itself.
func (r *confessionRepository) DeleteCascade(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []string
		if err := tx.Model(&domain.Comment{}).
			Where("confession_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).
				Delete(&domain.CommentLike{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("confession_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("confession_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Confession{}).Error
	})
}
