package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */

// User represents a registered student profile.
type User struct {
	ID                 string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FullName           string         `gorm:"not null" json:"fullName"`
	Email              string         `gorm:"unique;not null" json:"email"`
	Gender             string         `json:"gender"`
	Matricula          string         `json:"matricula"`
	Curso              string         `json:"curso"`
	Periodo            int            `json:"periodo"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Bio                string         `gorm:"type:text" json:"bio"`
	AvatarURL          string         `json:"avatarUrl"`
	Interests          []string       `gorm:"serializer:json" json:"interests"`
	GalleryImages      []string       `gorm:"serializer:json" json:"galleryImages"`
	MateriasConcluidas []string       `gorm:"serializer:json" json:"materiasConcluidas"`
	IsPrivate          bool           `gorm:"default:false" json:"isPrivate"`
	FiltroMadrinha     bool           `gorm:"default:false" json:"filtroMadrinha"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

/** -------------------- DTOs -------------------- */

type RegisterRequest struct {
	FullName  string `json:"fullName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Gender    string `json:"gender"`
	Matricula string `json:"matricula"`
	Curso     string `json:"curso"`
	Periodo   int    `json:"periodo"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName           string   `json:"fullName"`
	Gender             string   `json:"gender"`
	Bio                string   `json:"bio"`
	AvatarURL          string   `json:"avatarUrl"`
	Interests          []string `json:"interests"`
	GalleryImages      []string `json:"galleryImages"`
	MateriasConcluidas []string `json:"materiasConcluidas"`
	Matricula          string   `json:"matricula"`
	Curso              string   `json:"curso"`
	Periodo            int      `json:"periodo"`
	IsPrivate          *bool    `json:"isPrivate"`
	FiltroMadrinha     *bool    `json:"filtroMadrinha"`
}

// UserResponse is the public view of a profile (no credentials).
type UserResponse struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"fullName"`
	Email              string    `json:"email"`
	Gender             string    `json:"gender"`
	Matricula          string    `json:"matricula"`
	Curso              string    `json:"curso"`
	Periodo            int       `json:"periodo"`
	Bio                string    `json:"bio"`
	AvatarURL          string    `json:"avatarUrl"`
	Interests          []string  `json:"interests"`
	GalleryImages      []string  `json:"galleryImages"`
	MateriasConcluidas []string  `json:"materiasConcluidas"`
	IsPrivate          bool      `json:"isPrivate"`
	FiltroMadrinha     bool      `json:"filtroMadrinha"`
	CreatedAt          time.Time `json:"createdAt"`
}

// SearchResultResponse pairs a found profile with the viewer's
// relationship to it, so the UI knows which button to render.
type SearchResultResponse struct {
	User     UserResponse     `json:"user"`
	Relation RelationResponse `json:"relation"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:                 u.ID,
		FullName:           u.FullName,
		Email:              u.Email,
		Gender:             u.Gender,
		Matricula:          u.Matricula,
		Curso:              u.Curso,
		Periodo:            u.Periodo,
		Bio:                u.Bio,
		AvatarURL:          u.AvatarURL,
		Interests:          u.Interests,
		GalleryImages:      u.GalleryImages,
		MateriasConcluidas: u.MateriasConcluidas,
		IsPrivate:          u.IsPrivate,
		FiltroMadrinha:     u.FiltroMadrinha,
		CreatedAt:          u.CreatedAt,
	}
}
