package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Confession visibility values
const (
	VisibilityPublic  = "PUBLIC"
	VisibilityPrivate = "PRIVATE"
)

// Confession status values.
// ACTIVE -> REVEALED -> CONNECTED; DELETED is terminal.
const (
	ConfessionActive    = "ACTIVE"
	ConfessionRevealed  = "REVEALED"
	ConfessionConnected = "CONNECTED"
	ConfessionDeleted   = "DELETED"
)

// Confession is an anonymous message, optionally targeted at a crush
type Confession struct {
	ID               string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Content          string    `gorm:"column:content;type:text;not null" json:"content"`
	Visibility       string    `gorm:"column:visibility;size:20;not null" json:"visibility"`
	SenderID         string    `gorm:"column:sender_id;size:36;index;not null" json:"sender_id"`
	TargetUserID     *string   `gorm:"column:target_user_id;size:36;index" json:"target_user_id,omitempty"`
	Timestamp        time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
	Status           string    `gorm:"column:status;size:20;default:ACTIVE" json:"status"`
	SenderRevealed   bool      `gorm:"column:sender_revealed;default:false" json:"sender_revealed"`
	ReceiverRevealed bool      `gorm:"column:receiver_revealed;default:false" json:"receiver_revealed"`
	ChatChannelID    *string   `gorm:"column:chat_channel_id;size:36" json:"chat_channel_id,omitempty"`

	Sender     *User `gorm:"foreignKey:SenderID" json:"-"`
	TargetUser *User `gorm:"foreignKey:TargetUserID" json:"-"`
}

// TableName returns the table name for GORM
func (Confession) TableName() string {
	return "confessions"
}

// BeforeCreate assigns a UUID primary key
func (cf *Confession) BeforeCreate(_ *gorm.DB) error {
	if cf.ID == "" {
		cf.ID = uuid.New().String()
	}
	return nil
}

// IsMutual reports whether both sides have revealed interest
func (cf *Confession) IsMutual() bool {
	return cf.SenderRevealed && cf.ReceiverRevealed
}

// Like marks that a user liked a confession. The row's existence is the
// liked state; toggling deletes or inserts, there is no boolean flag.
type Like struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"column:user_id;size:36;uniqueIndex:idx_like_user_confession;not null" json:"user_id"`
	ConfessionID string    `gorm:"column:confession_id;size:36;uniqueIndex:idx_like_user_confession;index;not null" json:"confession_id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name for GORM
func (Like) TableName() string {
	return "likes"
}

// BeforeCreate assigns a UUID primary key
func (l *Like) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// ConfessionResponse is the feed DTO for a confession.
// Like/comment counts and the viewer's perspective are derived at read
// time, never stored.
type ConfessionResponse struct {
	ID               string  `json:"id"`
	Content          string  `json:"content"`
	Timestamp        string  `json:"timestamp"`
	Status           string  `json:"status"`
	Visibility       string  `json:"visibility"`
	Likes            int64   `json:"likes"`
	Comments         int64   `json:"comments"`
	TargetUserName   string  `json:"target_user_name"`
	SenderName       string  `json:"sender_name"`
	HasLiked         bool    `json:"has_liked"`
	IsSender         bool    `json:"is_sender"`
	IsReceiver       bool    `json:"is_receiver"`
	SenderRevealed   bool    `json:"sender_revealed"`
	ReceiverRevealed bool    `json:"receiver_revealed"`
	MutualReveal     bool    `json:"mutual_reveal"`
	ChatChannelID    *string `json:"chat_channel_id"`
}

// LikeToggleResponse reports the result of a like toggle
type LikeToggleResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// RevealResponse reports the outcome of a reveal action
type RevealResponse struct {
	Message                   string `json:"message"`
	Status                    string `json:"status"`
	MutualReveal              bool   `json:"mutual_reveal"`
	SenderRevealed            bool   `json:"sender_revealed"`
	ReceiverRevealed          bool   `json:"receiver_revealed"`
	ConversationID            string `json:"conversation_id,omitempty"`
	ConversationAlreadyExists bool   `json:"conversation_already_exists,omitempty"`
}
