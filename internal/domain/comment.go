package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a reply on a confession. Replies nest exactly one level:
// a reply's ParentCommentID always points at a top-level comment.
type Comment struct {
	ID              string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Content         string    `gorm:"column:content;size:500;not null" json:"content"`
	ConfessionID    string    `gorm:"column:confession_id;size:36;index;not null" json:"confession_id"`
	UserID          string    `gorm:"column:user_id;size:36;index;not null" json:"user_id"`
	ParentCommentID *string   `gorm:"column:parent_comment_id;size:36;index" json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	RevealRequested bool      `gorm:"column:reveal_requested;default:false" json:"reveal_requested"`
	RevealApproved  bool      `gorm:"column:reveal_approved;default:false" json:"reveal_approved"`

	User    *User     `gorm:"foreignKey:UserID" json:"-"`
	Replies []Comment `gorm:"foreignKey:ParentCommentID" json:"-"`
}

// TableName returns the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate assigns a UUID primary key
func (cm *Comment) BeforeCreate(_ *gorm.DB) error {
	if cm.ID == "" {
		cm.ID = uuid.New().String()
	}
	return nil
}

// CommentLike marks that a user liked a comment; same toggle semantics as Like
type CommentLike struct {
	ID        string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"column:user_id;size:36;uniqueIndex:idx_commentlike_user_comment;not null" json:"user_id"`
	CommentID string    `gorm:"column:comment_id;size:36;uniqueIndex:idx_commentlike_user_comment;index;not null" json:"comment_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name for GORM
func (CommentLike) TableName() string {
	return "comment_likes"
}

// BeforeCreate assigns a UUID primary key
func (cl *CommentLike) BeforeCreate(_ *gorm.DB) error {
	if cl.ID == "" {
		cl.ID = uuid.New().String()
	}
	return nil
}

// CommentResponse is the DTO for a comment and its derived fields.
// Mentions and like counts are recomputed on every read.
type CommentResponse struct {
	ID              string            `json:"id"`
	Content         string            `json:"content"`
	CreatedAt       string            `json:"created_at"`
	Likes           int64             `json:"likes"`
	User            UserSummary       `json:"user"`
	UserLiked       bool              `json:"user_liked"`
	Replies         []CommentResponse `json:"replies"`
	Mentions        []string          `json:"mentions"`
	RevealRequested bool              `json:"reveal_requested"`
	RevealApproved  bool              `json:"reveal_approved"`
}

// CommentRevealResponse reports the outcome of a comment identity reveal
type CommentRevealResponse struct {
	Message                   string `json:"message"`
	RevealRequested           bool   `json:"reveal_requested"`
	RevealApproved            bool   `json:"reveal_approved"`
	ConversationID            string `json:"conversation_id,omitempty"`
	ConversationAlreadyExists bool   `json:"conversation_already_exists,omitempty"`
}
