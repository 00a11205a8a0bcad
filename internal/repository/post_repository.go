package repository

import (
	"context"
	"errors"

	"campusnet/internal/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id string) (*models.Post, error)
	ListRecent(ctx context.Context, limit int) ([]models.Post, error)
	ListByAuthor(ctx context.Context, userID string) ([]models.Post, error)
	ListLikedBy(ctx context.Context, userID string) ([]models.Post, error)

	CountLikes(ctx context.Context, postID string) (int64, error)
	CountComments(ctx context.Context, postID string) (int64, error)
	HasLiked(ctx context.Context, userID, postID string) (bool, error)

	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID, postID string) error
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, userID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListLikedBy(ctx context.Context, userID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountLikes(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) CountComments(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) HasLiked(ctx context.Context, userID, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Like{}).
			Where("user_id = ? AND post_id = ?", like.UserID, like.PostID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		if err := tx.Create(like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return gorm.ErrDuplicatedKey
			}
			return err
		}
		return nil
	})
}

func (r *postRepository) DeleteLike(ctx context.Context, userID, postID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}
