package repository

import (
	"errors"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository defines comment and comment-like operations
type CommentRepository interface {
	FindByID(id string) (*domain.Comment, error)
	FindTopLevelWithReplies(confessionID string) ([]domain.Comment, error)
	CountByConfessionIDs(confessionIDs []string) (map[string]int64, error)
	Create(comment *domain.Comment) error
	SetRevealRequested(id string) error
	SetRevealApproved(id string) error

	HasLike(userID, commentID string) (bool, error)
	AddLike(userID, commentID string) error
	RemoveLike(userID, commentID string) error
	CountLikes(commentID string) (int64, error)
	CountLikesByCommentIDs(commentIDs []string) (map[string]int64, error)
	LikedCommentIDs(userID string, commentIDs []string) (map[string]bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) FindByID(id string) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.Preload("User").Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// FindTopLevelWithReplies returns top-level comments newest first, each
// with its replies oldest first and authors preloaded.
func (r *commentRepository) FindTopLevelWithReplies(confessionID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.User").
		Where("confession_id = ? AND parent_comment_id IS NULL", confessionID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) CountByConfessionIDs(confessionIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(confessionIDs))
	if len(confessionIDs) == 0 {
		return counts, nil
	}

	var rows []countRow
	err := r.db.Model(&domain.Comment{}).
		Select("confession_id AS key_id, COUNT(*) AS cnt").
		Where("confession_id IN ?", confessionIDs).
		Group("confession_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) SetRevealRequested(id string) error {
	return r.db.Model(&domain.Comment{}).Where("id = ?", id).
		Update("reveal_requested", true).Error
}

func (r *commentRepository) SetRevealApproved(id string) error {
	return r.db.Model(&domain.Comment{}).Where("id = ?", id).
		Update("reveal_approved", true).Error
}

func (r *commentRepository) HasLike(userID, commentID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count > 0, err
}

func (r *commentRepository) AddLike(userID, commentID string) error {
	return r.db.Create(&domain.CommentLike{UserID: userID, CommentID: commentID}).Error
}

func (r *commentRepository) RemoveLike(userID, commentID string) error {
	return r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&domain.CommentLike{}).Error
}

func (r *commentRepository) CountLikes(commentID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) CountLikesByCommentIDs(commentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	var rows []countRow
	err := r.db.Model(&domain.CommentLike{}).
		Select("comment_id AS key_id, COUNT(*) AS cnt").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

func (r *commentRepository) LikedCommentIDs(userID string, commentIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(commentIDs))
	if len(commentIDs) == 0 {
		return liked, nil
	}

	var ids []string
	err := r.db.Model(&domain.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
