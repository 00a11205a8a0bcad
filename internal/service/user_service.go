package service

import (
	"context"
	"errors"
	"mime/multipart"

	"campusnet/internal/models"
	"campusnet/internal/repository"

	"gorm.io/gorm"
)

// ImageStore uploads an image and returns its public URL.
type ImageStore interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type UserService struct {
	userRepo    repository.UserRepository
	friendships *FriendshipService
	images      ImageStore
}

func NewUserService(userRepo repository.UserRepository, friendships *FriendshipService, images ImageStore) *UserService {
	return &UserService{
		userRepo:    userRepo,
		friendships: friendships,
		images:      images,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile applies a profile edit. Only the owner may edit.
func (s *UserService) UpdateProfile(ctx context.Context, actingUserID, targetID string, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	if actingUserID != targetID {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user.FullName = req.FullName
	user.Gender = req.Gender
	user.Bio = req.Bio
	user.AvatarURL = req.AvatarURL
	user.Interests = req.Interests
	user.GalleryImages = req.GalleryImages
	user.MateriasConcluidas = req.MateriasConcluidas
	user.Matricula = req.Matricula
	user.Curso = req.Curso
	user.Periodo = req.Periodo
	if req.IsPrivate != nil {
		user.IsPrivate = *req.IsPrivate
	}
	if req.FiltroMadrinha != nil {
		user.FiltroMadrinha = *req.FiltroMadrinha
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// UploadAvatar stores the image and records its URL on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	url, err := s.images.UploadImage(ctx, file)
	if err != nil {
		return "", err
	}

	user.AvatarURL = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}
	return url, nil
}

// Search finds profiles by name and annotates each with the viewer's
// relationship, recomputed per query.
func (s *UserService) Search(ctx context.Context, viewerID, query string) ([]models.SearchResultResponse, error) {
	users, err := s.userRepo.SearchByName(ctx, query, 20)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResultResponse, 0, len(users))
	for _, u := range users {
		relation, err := s.friendships.Relation(ctx, viewerID, u.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, models.SearchResultResponse{
			User:     *u.ToResponse(),
			Relation: *relation,
		})
	}
	return results, nil
}
