package service

import (
	"context"
	"errors"

	"campusnet/internal/models"
	"campusnet/internal/repository"

	"gorm.io/gorm"
)

// FriendshipService owns the relationship state machine:
//
//	absent --request--> pending --accept--> accepted --break--> absent
//	                    pending --reject--> absent
//
// There is no stored terminal state: reject and break delete the row,
// so a later request starts from scratch.
type FriendshipService struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
	notifier       *NotificationService
}

func NewFriendshipService(
	friendshipRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
	notifier *NotificationService,
) *FriendshipService {
	return &FriendshipService{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// Request creates a pending friendship from requester to receiver and
// notifies the receiver. A relationship already present in either
// direction, in any status, is a conflict rather than a silent no-op.
func (s *FriendshipService) Request(ctx context.Context, requesterID, receiverID string) (*models.Friendship, error) {
	if requesterID == receiverID {
		return nil, ErrInvalidOperation
	}

	if _, err := s.userRepo.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	f, err := s.friendshipRepo.CreatePending(ctx, requesterID, receiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.notifier.Emit(ctx, receiverID, models.NotificationFriendRequest, &requesterID, nil, "sent you a friend request")
	return f, nil
}

// Accept moves a pending request to accepted. Only the receiver may
// accept, and only from the pending state. The original requester is
// notified on success.
func (s *FriendshipService) Accept(ctx context.Context, friendshipID, actingUserID string) (*models.Friendship, error) {
	f, err := s.friendshipRepo.Transition(ctx, friendshipID, func(f *models.Friendship) (repository.TransitionOp, error) {
		if f.ReceiverID != actingUserID {
			return repository.TransitionKeep, ErrForbidden
		}
		if f.Status != models.FriendshipStatusPending {
			return repository.TransitionKeep, ErrInvalidState
		}
		f.Status = models.FriendshipStatusAccepted
		return repository.TransitionUpdate, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.notifier.Emit(ctx, f.RequesterID, models.NotificationFriendAccept, &f.ReceiverID, nil, "accepted your friend request")
	return f, nil
}

// Reject removes a pending request entirely. No notification goes back
// to the requester: the outcome is indistinguishable from never having
// asked.
func (s *FriendshipService) Reject(ctx context.Context, friendshipID, actingUserID string) error {
	_, err := s.friendshipRepo.Transition(ctx, friendshipID, func(f *models.Friendship) (repository.TransitionOp, error) {
		if f.ReceiverID != actingUserID {
			return repository.TransitionKeep, ErrForbidden
		}
		if f.Status != models.FriendshipStatusPending {
			return repository.TransitionKeep, ErrInvalidState
		}
		return repository.TransitionDelete, nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Break deletes an accepted friendship. Either party may break it.
// Consumers that derive privileges from the relationship (chat, feed)
// must re-check status per use; nothing is cached here.
func (s *FriendshipService) Break(ctx context.Context, friendshipID, actingUserID string) error {
	_, err := s.friendshipRepo.Transition(ctx, friendshipID, func(f *models.Friendship) (repository.TransitionOp, error) {
		if !f.Involves(actingUserID) {
			return repository.TransitionKeep, ErrForbidden
		}
		if f.Status != models.FriendshipStatusAccepted {
			return repository.TransitionKeep, ErrInvalidState
		}
		return repository.TransitionDelete, nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// StatusBetween projects the single stored row onto the viewer's
// perspective. An absent row is a valid result, never an error.
func (s *FriendshipService) StatusBetween(ctx context.Context, viewerID, otherID string) (models.RelationView, error) {
	f, err := s.friendshipRepo.FindByPair(ctx, viewerID, otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RelationNone, nil
		}
		return models.RelationNone, err
	}

	if f.Status == models.FriendshipStatusAccepted {
		return models.RelationAccepted, nil
	}
	if f.RequesterID == viewerID {
		return models.RelationPendingOutgoing, nil
	}
	return models.RelationPendingIncoming, nil
}

// Relation computes everything the profile/search UI needs to render
// the right affordance for a target user. It is recomputed on every
// call; staleness here would gate the accept/reject buttons wrongly.
func (s *FriendshipService) Relation(ctx context.Context, viewerID, targetID string) (*models.RelationResponse, error) {
	if viewerID == targetID {
		return &models.RelationResponse{IsSelf: true, Status: models.RelationNone}, nil
	}

	f, err := s.friendshipRepo.FindByPair(ctx, viewerID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.RelationResponse{Status: models.RelationNone}, nil
		}
		return nil, err
	}

	resp := &models.RelationResponse{
		FriendshipID:      f.ID,
		RequestedByViewer: f.RequesterID == viewerID,
	}
	switch {
	case f.Status == models.FriendshipStatusAccepted:
		resp.Status = models.RelationAccepted
	case f.RequesterID == viewerID:
		resp.Status = models.RelationPendingOutgoing
	default:
		resp.Status = models.RelationPendingIncoming
	}
	return resp, nil
}

// Friends returns the users on the other end of every accepted
// friendship involving userID, in insertion order.
func (s *FriendshipService) Friends(ctx context.Context, userID string) ([]models.UserResponse, error) {
	friendships, err := s.friendshipRepo.ListAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}

	partnerIDs := make([]string, 0, len(friendships))
	for _, f := range friendships {
		partnerIDs = append(partnerIDs, f.PartnerOf(userID))
	}

	users, err := s.userRepo.FindByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	responses := make([]models.UserResponse, 0, len(partnerIDs))
	for _, id := range partnerIDs {
		if u, ok := byID[id]; ok {
			responses = append(responses, *u.ToResponse())
		}
	}
	return responses, nil
}

// PendingIncoming lists requests waiting on userID's decision.
func (s *FriendshipService) PendingIncoming(ctx context.Context, userID string) ([]models.PendingRequestResponse, error) {
	friendships, err := s.friendshipRepo.ListPendingIncoming(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.PendingRequestResponse, 0, len(friendships))
	for _, f := range friendships {
		responses = append(responses, models.PendingRequestResponse{
			ID:          f.ID,
			RequesterID: f.RequesterID,
			FullName:    f.Requester.FullName,
			AvatarURL:   f.Requester.AvatarURL,
			CreatedAt:   f.CreatedAt,
		})
	}
	return responses, nil
}
