package repository

import (
	"context"

	"campusnet/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	ListBetween(ctx context.Context, userA, userB string, limit int) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) ListBetween(ctx context.Context, userA, userB string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
