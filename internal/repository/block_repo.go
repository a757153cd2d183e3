package repository

import (
	"errors"

	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"gorm.io/gorm"
)

// BlockRepository defines user-block operations
type BlockRepository interface {
	Find(blockerID, blockedID string) (*domain.UserBlock, error)
	Create(block *domain.UserBlock) error
	Delete(id string) error
	ExistsEitherDirection(userA, userB string) (bool, error)
}

type blockRepository struct {
	db *gorm.DB
}

// NewBlockRepository creates a new BlockRepository
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

// Find returns the block record for the given direction, or nil when no
// block exists.
func (r *blockRepository) Find(blockerID, blockedID string) (*domain.UserBlock, error) {
	var block domain.UserBlock
	err := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		First(&block).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &block, nil
}

func (r *blockRepository) Create(block *domain.UserBlock) error {
	return r.db.Create(block).Error
}

func (r *blockRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.UserBlock{}).Error
}

// ExistsEitherDirection reports whether either user has blocked the other
func (r *blockRepository) ExistsEitherDirection(userA, userB string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.UserBlock{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}
