package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/movemate/logistics-api/internal/core/ports"
)

const visitorTTL = 30 * 24 * time.Hour

// VisitorStore persists visitor profiles keyed by their chat session id, so a
// returning visitor resumes their conversation without re-entering details.
// Key format: visitor:<session_id>
type VisitorStore struct {
	client *redis.Client
}

// NewVisitorStore creates a VisitorStore wrapping the given Redis client.
func NewVisitorStore(client *redis.Client) *VisitorStore {
	return &VisitorStore{client: client}
}

// Save writes the profile, refreshing its expiry.
func (s *VisitorStore) Save(ctx context.Context, p ports.VisitorProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal visitor profile: %w", err)
	}
	return s.client.Set(ctx, s.key(p.SessionID), data, visitorTTL).Err()
}

// Find returns the stored profile, or nil with no error for an unknown
// session id.
func (s *VisitorStore) Find(ctx context.Context, sessionID string) (*ports.VisitorProfile, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("find visitor profile: %w", err)
	}

	var p ports.VisitorProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal visitor profile: %w", err)
	}
	return &p, nil
}

func (s *VisitorStore) key(sessionID string) string {
	return "visitor:" + sessionID
}
