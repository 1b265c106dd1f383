package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 5 * time.Minute

// ReminderGuard grants at most one auto-reply reminder per chat session per
// window, backed by Redis so the guarantee survives process restarts.
// Key format: reminder:<session_id>
type ReminderGuard struct {
	client *redis.Client
}

// NewReminderGuard creates a ReminderGuard wrapping the given Redis client.
func NewReminderGuard(client *redis.Client) *ReminderGuard {
	return &ReminderGuard{client: client}
}

// Acquire attempts to claim the reminder slot for a session. It returns false
// when a reminder was already sent within the guard window.
func (g *ReminderGuard) Acquire(ctx context.Context, sessionID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(sessionID), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("reminder guard acquire: %w", err)
	}
	return ok, nil
}

// Release frees the reminder slot, typically after an agent replies.
func (g *ReminderGuard) Release(ctx context.Context, sessionID string) error {
	return g.client.Del(ctx, g.key(sessionID)).Err()
}

func (g *ReminderGuard) key(sessionID string) string {
	return "reminder:" + sessionID
}
