package repository

import (
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"gorm.io/gorm"
)

// countRow is the scan target for grouped count queries
type countRow struct {
	Key   string `gorm:"column:key_id"`
	Count int64  `gorm:"column:cnt"`
}

// LikeRepository defines confession-like toggle operations
type LikeRepository interface {
	Has(userID, confessionID string) (bool, error)
	Add(userID, confessionID string) error
	Remove(userID, confessionID string) error
	CountByConfession(confessionID string) (int64, error)
	CountByConfessionIDs(confessionIDs []string) (map[string]int64, error)
	LikedConfessionIDs(userID string) (map[string]bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Has(userID, confessionID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Like{}).
		Where("user_id = ? AND confession_id = ?", userID, confessionID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) Add(userID, confessionID string) error {
	return r.db.Create(&domain.Like{UserID: userID, ConfessionID: confessionID}).Error
}

func (r *likeRepository) Remove(userID, confessionID string) error {
	return r.db.Where("user_id = ? AND confession_id = ?", userID, confessionID).
		Delete(&domain.Like{}).Error
}

func (r *likeRepository) CountByConfession(confessionID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Like{}).
		Where("confession_id = ?", confessionID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CountByConfessionIDs(confessionIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(confessionIDs))
	if len(confessionIDs) == 0 {
		return counts, nil
	}

	var rows []countRow
	err := r.db.Model(&domain.Like{}).
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

func (r *likeRepository) LikedConfessionIDs(userID string) (map[string]bool, error) {
	var ids []string
	err := r.db.Model(&domain.Like{}).
		Where("user_id = ?", userID).
		Pluck("confession_id", &ids).Error
	if err != nil {
		return nil, err
	}
	liked := make(map[string]bool, len(ids))
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
