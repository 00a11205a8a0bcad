package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a feed entry. Like/comment counts are derived by counting
// referencing rows, never stored on the post.
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"not null;type:varchar(36);index" json:"userId"`
	Content   string    `gorm:"type:text" json:"content"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// Like references exactly one post and one user; the pair is unique.
type Like struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"not null;type:varchar(36);uniqueIndex:idx_like_user_post" json:"userId"`
	PostID    string    `gorm:"not null;type:varchar(36);uniqueIndex:idx_like_user_post" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// Comment references exactly one post and one user.
type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"not null;type:varchar(36)" json:"userId"`
	PostID    string    `gorm:"not null;type:varchar(36);index" json:"postId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

/** -------------------- DTOs -------------------- */

type CreatePostRequest struct {
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostResponse is a post enriched with author identity and derived counts.
type PostResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	FullName     string    `json:"fullName"`
	AvatarURL    string    `json:"avatarUrl"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"imageUrl"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	LikedByMe    bool      `json:"likedByMe"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
