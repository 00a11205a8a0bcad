package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a persisted direct message between two accepted friends.
type Message struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SenderID   string    `gorm:"not null;type:varchar(36);index" json:"senderId"`
	ReceiverID string    `gorm:"not null;type:varchar(36);index" json:"receiverId"`
	Content    string    `gorm:"type:text" json:"content"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
