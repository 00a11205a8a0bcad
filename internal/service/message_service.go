package service

import (
	"context"

	"campusnet/internal/models"
	"campusnet/internal/repository"
)

const historyLimit = 200

// MessageService is the direct-message store behind the chat stub.
// Every send and every history read re-checks the ledger: breaking a
// friendship revokes messaging immediately, nothing is cached.
type MessageService struct {
	messageRepo repository.MessageRepository
	friendships *FriendshipService
}

func NewMessageService(messageRepo repository.MessageRepository, friendships *FriendshipService) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		friendships: friendships,
	}
}

func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content, imageURL string) (*models.Message, error) {
	status, err := s.friendships.StatusBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if status != models.RelationAccepted {
		return nil, ErrForbidden
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		ImageURL:   imageURL,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *MessageService) History(ctx context.Context, userID, friendID string) ([]models.Message, error) {
	status, err := s.friendships.StatusBetween(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if status != models.RelationAccepted {
		return nil, ErrForbidden
	}

	return s.messageRepo.ListBetween(ctx, userID, friendID, historyLimit)
}
