package service

import (
	"context"
	"errors"
	"log/slog"

	"campusnet/internal/events"
	"campusnet/internal/models"
	"campusnet/internal/repository"

	"gorm.io/gorm"
)

// NotificationService appends user-visible events as a side effect of
// ledger and content mutations. Emission is best-effort: a failed
// append or publish is logged and never fails the triggering action.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	publisher        events.Publisher
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	publisher events.Publisher,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		publisher:        publisher,
	}
}

// Emit appends an unread notification for recipientID. Actions on one's
// own content or relationship produce nothing: a sender equal to the
// recipient is silently dropped.
func (s *NotificationService) Emit(ctx context.Context, recipientID string, typ models.NotificationType, senderID, postID *string, content string) {
	if senderID != nil && *senderID == recipientID {
		return
	}

	n := &models.Notification{
		UserID:   recipientID,
		Type:     typ,
		SenderID: senderID,
		PostID:   postID,
		Content:  content,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		slog.Error("Failed to append notification", "error", err, "recipient", recipientID, "type", typ)
		return
	}

	if s.publisher != nil {
		s.publisher.PublishNotification(n)
	}
}

// ListFor returns all notifications for a user, most recent first,
// with sender display names resolved.
func (s *NotificationService) ListFor(ctx context.Context, userID string) ([]models.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]string, 0, len(notifications))
	for _, n := range notifications {
		if n.SenderID != nil {
			senderIDs = append(senderIDs, *n.SenderID)
		}
	}

	senders, err := s.userRepo.FindByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(senders))
	for _, u := range senders {
		names[u.ID] = u.FullName
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		senderName := "Unknown"
		if n.SenderID != nil {
			if name, ok := names[*n.SenderID]; ok {
				senderName = name
			}
		}
		responses = append(responses, models.NotificationResponse{
			ID:         n.ID,
			Type:       n.Type,
			SenderID:   n.SenderID,
			SenderName: senderName,
			PostID:     n.PostID,
			Content:    n.Content,
			Read:       n.Read,
			CreatedAt:  n.CreatedAt,
		})
	}
	return responses, nil
}

// MarkRead flags a notification as read. Marking an already-read
// notification again is a no-op, not an error.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if n.Read {
		return nil
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}
