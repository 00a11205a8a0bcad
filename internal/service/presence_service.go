package service

import (
	"context"
	"log/slog"

	"campusnet/internal/models"
	"campusnet/internal/repository"
)

// PresenceService tracks which users hold a live chat connection.
// Presence is advisory; failures are logged and never fail the
// connection lifecycle.
type PresenceService struct {
	presenceRepo repository.PresenceRepository
	friendships  *FriendshipService
}

func NewPresenceService(presenceRepo repository.PresenceRepository, friendships *FriendshipService) *PresenceService {
	return &PresenceService{
		presenceRepo: presenceRepo,
		friendships:  friendships,
	}
}

func (s *PresenceService) Connected(ctx context.Context, userID string) {
	if err := s.presenceRepo.SetOnline(ctx, userID); err != nil {
		slog.Error("Failed to set presence online", "error", err, "user", userID)
	}
}

func (s *PresenceService) Disconnected(ctx context.Context, userID string) {
	if err := s.presenceRepo.SetOffline(ctx, userID); err != nil {
		slog.Error("Failed to set presence offline", "error", err, "user", userID)
	}
}

// OnlineFriends returns the accepted friends of userID that currently
// hold a live connection.
func (s *PresenceService) OnlineFriends(ctx context.Context, userID string) ([]models.UserResponse, error) {
	friends, err := s.friendships.Friends(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(friends))
	for _, f := range friends {
		ids = append(ids, f.ID)
	}

	online, err := s.presenceRepo.FilterOnline(ctx, ids)
	if err != nil {
		return nil, err
	}
	onlineSet := make(map[string]struct{}, len(online))
	for _, id := range online {
		onlineSet[id] = struct{}{}
	}

	result := make([]models.UserResponse, 0, len(online))
	for _, f := range friends {
		if _, ok := onlineSet[f.ID]; ok {
			result = append(result, f)
		}
	}
	return result, nil
}
