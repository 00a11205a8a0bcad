package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type PresenceRepository interface {
	SetOnline(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string) error
	FilterOnline(ctx context.Context, userIDs []string) ([]string, error)
}

type presenceRepository struct {
	client *redis.Client
}

func NewPresenceRepository(client *redis.Client) PresenceRepository {
	return &presenceRepository{client: client}
}

// SetOnline - Key: "presence:{userID}", TTL 5 minutes; refreshed by the
// websocket ping loop while the connection lives.
func (r *presenceRepository) SetOnline(ctx context.Context, userID string) error {
	return r.client.Set(ctx, "presence:"+userID, "online", 5*time.Minute).Err()
}

// SetOffline keeps the key briefly with an offline value to avoid
// flicker on reconnects.
func (r *presenceRepository) SetOffline(ctx context.Context, userID string) error {
	return r.client.Set(ctx, "presence:"+userID, "offline", time.Minute).Err()
}

// FilterOnline returns the subset of userIDs currently online,
// pipelined to keep it one roundtrip.
func (r *presenceRepository) FilterOnline(ctx context.Context, userIDs []string) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	cmds, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			pipe.Get(ctx, "presence:"+id)
		}
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, err
	}

	online := make([]string, 0)
	for i, cmd := range cmds {
		if val, _ := cmd.(*redis.StringCmd).Result(); val == "online" {
			online = append(online, userIDs[i])
		}
	}
	return online, nil
}
