package migration

import (
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all application tables.
// Tables are created when missing and altered additively when present.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Confession{},
		&domain.Like{},
		&domain.Comment{},
		&domain.CommentLike{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.UserBlock{},
	)
}
