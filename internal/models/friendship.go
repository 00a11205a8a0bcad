package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendshipStatus is the persisted state of a relationship row.
type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// RelationView is the friendship status projected from one user's viewpoint.
// An absent row projects to RelationNone, never an error.
type RelationView string

const (
	RelationNone            RelationView = "none"
	RelationPendingOutgoing RelationView = "pending-outgoing"
	RelationPendingIncoming RelationView = "pending-incoming"
	RelationAccepted        RelationView = "accepted"
)

// Friendship is a single row per unordered user pair. RequesterID and
// ReceiverID keep the request direction; UserLowID/UserHighID hold the
// pair in lexicographic order so the unique index treats (A,B) and
// (B,A) as the same relationship.
type Friendship struct {
	ID          string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	RequesterID string           `gorm:"not null;type:varchar(36)" json:"requesterId"`
	ReceiverID  string           `gorm:"not null;type:varchar(36)" json:"receiverId"`
	UserLowID   string           `gorm:"not null;type:varchar(36);uniqueIndex:idx_friendship_pair" json:"-"`
	UserHighID  string           `gorm:"not null;type:varchar(36);uniqueIndex:idx_friendship_pair" json:"-"`
	Status      FriendshipStatus `gorm:"not null;type:varchar(20);default:'pending'" json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	Requester User `gorm:"foreignKey:RequesterID;references:ID" json:"-"`
	Receiver  User `gorm:"foreignKey:ReceiverID;references:ID" json:"-"`
}

func (Friendship) TableName() string {
	return "friendships"
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	f.UserLowID, f.UserHighID = NormalizePair(f.RequesterID, f.ReceiverID)
	return nil
}

// NormalizePair orders two user ids lexicographically.
func NormalizePair(a, b string) (low, high string) {
	if a > b {
		return b, a
	}
	return a, b
}

// Involves reports whether userID is one of the two parties.
func (f *Friendship) Involves(userID string) bool {
	return f.RequesterID == userID || f.ReceiverID == userID
}

// PartnerOf returns the other party of the relationship.
func (f *Friendship) PartnerOf(userID string) string {
	if f.RequesterID == userID {
		return f.ReceiverID
	}
	return f.RequesterID
}

/** -------------------- DTOs -------------------- */

type FriendshipRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
}

// RelationResponse drives the profile/search UI: which button to render
// for the target user, and which friendship row accept/reject act on.
type RelationResponse struct {
	IsSelf            bool         `json:"isSelf"`
	Status            RelationView `json:"status"`
	FriendshipID      string       `json:"friendshipId,omitempty"`
	RequestedByViewer bool         `json:"requestedByViewer"`
}

type PendingRequestResponse struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requesterId"`
	FullName    string    `json:"fullName"`
	AvatarURL   string    `json:"avatarUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}
