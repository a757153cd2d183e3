package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation status values
const (
	ConversationActive  = "ACTIVE"
	ConversationBlocked = "BLOCKED"
)

// Conversation is a two-party message channel. The participant pair is
// unordered: (user1, user2) and (user2, user1) are the same conversation,
// and lookups must check both column orders.
type Conversation struct {
	ID             string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	User1ID        string    `gorm:"column:user1_id;size:36;index;not null" json:"user1_id"`
	User2ID        string    `gorm:"column:user2_id;size:36;index;not null" json:"user2_id"`
	Status         string    `gorm:"column:status;size:20;default:ACTIVE" json:"status"`
	StartTimestamp time.Time `gorm:"column:start_timestamp;autoCreateTime" json:"start_timestamp"`

	User1 *User `gorm:"foreignKey:User1ID" json:"-"`
	User2 *User `gorm:"foreignKey:User2ID" json:"-"`
}

// TableName returns the table name for GORM
func (Conversation) TableName() string {
	return "conversations"
}

// BeforeCreate assigns a UUID primary key
func (cv *Conversation) BeforeCreate(_ *gorm.DB) error {
	if cv.ID == "" {
		cv.ID = uuid.New().String()
	}
	return nil
}

// HasParticipant reports whether userID is one of the two participants
func (cv *Conversation) HasParticipant(userID string) bool {
	return cv.User1ID == userID || cv.User2ID == userID
}

// OtherParticipant returns the participant that is not userID
func (cv *Conversation) OtherParticipant(userID string) string {
	if cv.User1ID == userID {
		return cv.User2ID
	}
	return cv.User1ID
}

// Message is a single chat message
type Message struct {
	ID             string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	ConversationID string    `gorm:"column:conversation_id;size:36;index;not null" json:"conversation_id"`
	SenderID       string    `gorm:"column:sender_id;size:36;index;not null" json:"sender_id"`
	Content        string    `gorm:"column:content;size:1000;not null" json:"content"`
	Timestamp      time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
	ReadStatus     bool      `gorm:"column:read_status;default:false" json:"read_status"`

	Sender *User `gorm:"foreignKey:SenderID" json:"-"`
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns a UUID primary key
func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// UserBlock records that blocker has blocked blocked. Presence of a row
// disables message exchange for the blocking party.
type UserBlock struct {
	ID        string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	BlockerID string    `gorm:"column:blocker_id;size:36;uniqueIndex:idx_block_pair;not null" json:"blocker_id"`
	BlockedID string    `gorm:"column:blocked_id;size:36;uniqueIndex:idx_block_pair;index;not null" json:"blocked_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name for GORM
func (UserBlock) TableName() string {
	return "user_blocks"
}

// BeforeCreate assigns a UUID primary key
func (b *UserBlock) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// LastMessage is the most recent message DTO inside a conversation listing
type LastMessage struct {
	Content       string `json:"content"`
	Timestamp     string `json:"timestamp"`
	SenderID      string `json:"sender_id"`
	IsCurrentUser bool   `json:"is_current_user"`
}

// ConversationResponse is the DTO for one entry in the conversation list
type ConversationResponse struct {
	ID          string       `json:"id"`
	OtherUser   UserSummary  `json:"other_user"`
	LastMessage *LastMessage `json:"last_message"`
	UnreadCount int64        `json:"unread_count"`
}

// ConversationListResponse wraps the conversation list with the total
// unread count across all conversations
type ConversationListResponse struct {
	Conversations       []ConversationResponse `json:"conversations"`
	TotalUnreadMessages int64                  `json:"total_unread_messages"`
}

// ConversationDetails is the DTO for a single conversation's header view
type ConversationDetails struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	StartedAt string      `json:"started_at"`
	OtherUser UserSummary `json:"other_user"`
	IsBlocked bool        `json:"is_blocked"`
}

// MessageResponse is the DTO for a chat message
type MessageResponse struct {
	ID            string      `json:"id"`
	Content       string      `json:"content"`
	Timestamp     string      `json:"timestamp"`
	Sender        UserSummary `json:"sender"`
	IsCurrentUser bool        `json:"is_current_user"`
	ReadStatus    bool        `json:"read_status"`
}

// BlockToggleResponse reports the result of a block toggle
type BlockToggleResponse struct {
	Message   string `json:"message"`
	IsBlocked bool   `json:"is_blocked"`
}

// TypingUser is one actively-typing participant
type TypingUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// TypingStatusResponse reports who is typing in a conversation
type TypingStatusResponse struct {
	IsTyping    bool         `json:"is_typing"`
	TypingUsers []TypingUser `json:"typing_users"`
}
