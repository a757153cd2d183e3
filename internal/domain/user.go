package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account status values
const (
	AccountActive    = "ACTIVE"
	AccountSuspended = "SUSPENDED"
)

// User represents a registered campus user
type User struct {
	ID               string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Email            string    `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	Password         string    `gorm:"column:password;size:255;not null" json:"-"`
	DisplayName      *string   `gorm:"column:display_name;size:50" json:"display_name,omitempty"`
	ProfilePicture   *string   `gorm:"column:profile_picture;size:500" json:"profile_picture,omitempty"`
	AccountStatus    string    `gorm:"column:account_status;size:20;default:ACTIVE" json:"account_status"`
	RegistrationDate time.Time `gorm:"column:registration_date;autoCreateTime" json:"registration_date"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// PublicName returns the name shown to other users.
// Users without a display name stay anonymous.
func (u *User) PublicName() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return "Anonymous"
}

// UserSummary is the minimal user DTO embedded in other responses
type UserSummary struct {
	ID             string  `json:"id"`
	DisplayName    string  `json:"display_name"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// Summary builds the public DTO for a user
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		DisplayName:    u.PublicName(),
		ProfilePicture: u.ProfilePicture,
	}
}

// ProfileResponse is the full self-profile DTO
type ProfileResponse struct {
	ID                  string               `json:"id"`
	Email               string               `json:"email"`
	DisplayName         *string              `json:"display_name"`
	ProfilePicture      *string              `json:"profile_picture"`
	RegistrationDate    string               `json:"registration_date"`
	SentConfessions     []ConfessionResponse `json:"sent_confessions"`
	ReceivedConfessions []ConfessionResponse `json:"received_confessions"`
}
