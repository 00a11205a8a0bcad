package repository

import (
	"context"
	"errors"

	"campusnet/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransitionOp tells the repository what to do with a friendship row
// after the caller's guards have run inside the transaction.
type TransitionOp int

const (
	TransitionKeep TransitionOp = iota
	TransitionUpdate
	TransitionDelete
)

type FriendshipRepository interface {
	// CreatePending inserts a pending row for the pair. The existence
	// check and the insert run in one transaction; a row already
	// present in either direction yields gorm.ErrDuplicatedKey.
	CreatePending(ctx context.Context, requesterID, receiverID string) (*models.Friendship, error)

	// Transition loads the row by id under a row lock, hands it to fn
	// for guard checks, then applies the returned op in the same
	// transaction. A missing row yields gorm.ErrRecordNotFound.
	Transition(ctx context.Context, id string, fn func(f *models.Friendship) (TransitionOp, error)) (*models.Friendship, error)

	FindByID(ctx context.Context, id string) (*models.Friendship, error)
	FindByPair(ctx context.Context, userA, userB string) (*models.Friendship, error)
	ListAccepted(ctx context.Context, userID string) ([]models.Friendship, error)
	ListPendingIncoming(ctx context.Context, userID string) ([]models.Friendship, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) CreatePending(ctx context.Context, requesterID, receiverID string) (*models.Friendship, error) {
	f := &models.Friendship{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      models.FriendshipStatusPending,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		low, high := models.NormalizePair(requesterID, receiverID)
		var count int64
		if err := tx.Model(&models.Friendship{}).
			Where("user_low_id = ? AND user_high_id = ?", low, high).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		if err := tx.Create(f).Error; err != nil {
			// The unique pair index backs up the check under concurrency.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return gorm.ErrDuplicatedKey
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *friendshipRepository) Transition(ctx context.Context, id string, fn func(f *models.Friendship) (TransitionOp, error)) (*models.Friendship, error) {
	var f models.Friendship
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&f, "id = ?", id).Error; err != nil {
			return err
		}

		op, err := fn(&f)
		if err != nil {
			return err
		}

		switch op {
		case TransitionUpdate:
			return tx.Model(&models.Friendship{}).
				Where("id = ?", f.ID).
				Update("status", f.Status).Error
		case TransitionDelete:
			return tx.Delete(&models.Friendship{}, "id = ?", f.ID).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *friendshipRepository) FindByID(ctx context.Context, id string) (*models.Friendship, error) {
	var f models.Friendship
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *friendshipRepository) FindByPair(ctx context.Context, userA, userB string) (*models.Friendship, error) {
	low, high := models.NormalizePair(userA, userB)
	var f models.Friendship
	if err := r.db.WithContext(ctx).
		Where("user_low_id = ? AND user_high_id = ?", low, high).
		First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *friendshipRepository) ListAccepted(ctx context.Context, userID string) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.WithContext(ctx).
		Where("status = ? AND (requester_id = ? OR receiver_id = ?)",
			models.FriendshipStatusAccepted, userID, userID).
		Order("created_at").
		Find(&friendships).Error
	return friendships, err
}

func (r *friendshipRepository) ListPendingIncoming(ctx context.Context, userID string) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("status = ? AND receiver_id = ?", models.FriendshipStatusPending, userID).
		Order("created_at DESC").
		Find(&friendships).Error
	return friendships, err
}
