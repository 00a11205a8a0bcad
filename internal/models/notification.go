package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType tags what triggered a notification.
type NotificationType string

const (
	NotificationLike          NotificationType = "like"
	NotificationComment       NotificationType = "comment"
	NotificationFriendRequest NotificationType = "friend-request"
	NotificationFriendAccept  NotificationType = "friend-accept"
)

// Notification belongs to exactly one recipient. Rows are only ever
// appended and marked read, never deleted.
type Notification struct {
	ID        string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string           `gorm:"not null;type:varchar(36);index" json:"userId"`
	Type      NotificationType `gorm:"not null;type:varchar(30)" json:"type"`
	SenderID  *string          `gorm:"type:varchar(36)" json:"senderId,omitempty"`
	PostID    *string          `gorm:"type:varchar(36)" json:"postId,omitempty"`
	Content   string           `json:"content"`
	Read      bool             `gorm:"default:false" json:"read"`
	CreatedAt time.Time        `gorm:"index" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// NotificationResponse enriches a row with the sender's display name.
type NotificationResponse struct {
	ID         string           `json:"id"`
	Type       NotificationType `json:"type"`
	SenderID   *string          `json:"senderId,omitempty"`
	SenderName string           `json:"senderName"`
	PostID     *string          `json:"postId,omitempty"`
	Content    string           `json:"content"`
	Read       bool             `json:"read"`
	CreatedAt  time.Time        `json:"createdAt"`
}
