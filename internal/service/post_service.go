package service

import (
	"context"
	"errors"

	"campusnet/internal/models"
	"campusnet/internal/repository"

	"gorm.io/gorm"
)

const feedLimit = 50

// PostService is the content store: posts with derived like/comment
// counts. Interactions on someone else's post notify the author.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	notifier *NotificationService
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, notifier *NotificationService) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *PostService) CreatePost(ctx context.Context, userID string, req *models.CreatePostRequest) (*models.PostResponse, error) {
	post := &models.Post{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, userID, post)
}

func (s *PostService) Feed(ctx context.Context, viewerID string) ([]models.PostResponse, error) {
	posts, err := s.postRepo.ListRecent(ctx, feedLimit)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, viewerID, posts)
}

func (s *PostService) UserPosts(ctx context.Context, viewerID, userID string) ([]models.PostResponse, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, viewerID, posts)
}

func (s *PostService) LikedPosts(ctx context.Context, viewerID, userID string) ([]models.PostResponse, error) {
	posts, err := s.postRepo.ListLikedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, viewerID, posts)
}

// Like records a like and notifies the author. Liking twice is a
// conflict; liking your own post produces no notification.
func (s *PostService) Like(ctx context.Context, userID, postID string) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	like := &models.Like{UserID: userID, PostID: postID}
	if err := s.postRepo.CreateLike(ctx, like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}

	s.notifier.Emit(ctx, post.UserID, models.NotificationLike, &userID, &postID, "liked your post")
	return nil
}

func (s *PostService) Unlike(ctx context.Context, userID, postID string) error {
	if err := s.postRepo.DeleteLike(ctx, userID, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *PostService) AddComment(ctx context.Context, userID, postID string, req *models.CreateCommentRequest) (*models.CommentResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.notifier.Emit(ctx, post.UserID, models.NotificationComment, &userID, &postID, "commented on your post")

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.CommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		FullName:  author.FullName,
		AvatarURL: author.AvatarURL,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}, nil
}

func (s *PostService) Comments(ctx context.Context, postID string) ([]models.CommentResponse, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comments, err := s.postRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, models.CommentResponse{
			ID:        c.ID,
			UserID:    c.UserID,
			FullName:  c.User.FullName,
			AvatarURL: c.User.AvatarURL,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return responses, nil
}

func (s *PostService) toResponses(ctx context.Context, viewerID string, posts []models.Post) ([]models.PostResponse, error) {
	responses := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		resp, err := s.toResponse(ctx, viewerID, &posts[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *PostService) toResponse(ctx context.Context, viewerID string, post *models.Post) (*models.PostResponse, error) {
	author, err := s.userRepo.FindByID(ctx, post.UserID)
	if err != nil {
		return nil, err
	}
	likeCount, err := s.postRepo.CountLikes(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	commentCount, err := s.postRepo.CountComments(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	likedByMe, err := s.postRepo.HasLiked(ctx, viewerID, post.ID)
	if err != nil {
		return nil, err
	}

	return &models.PostResponse{
		ID:           post.ID,
		UserID:       post.UserID,
		FullName:     author.FullName,
		AvatarURL:    author.AvatarURL,
		Content:      post.Content,
		ImageURL:     post.ImageURL,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		LikedByMe:    likedByMe,
		CreatedAt:    post.CreatedAt,
	}, nil
}
