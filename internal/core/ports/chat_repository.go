package ports

import (
	"context"

	"github.com/movemate/logistics-api/internal/core/domain"
)

// ChatListFilter carries the equality predicates for listing chat sessions.
type ChatListFilter struct {
	Status string
}

// ChatRepository defines persistence operations for chat sessions. Every
// Update bumps the session's version counter atomically so stale realtime
// notifications can be recognized and dropped.
type ChatRepository interface {
	Create(ctx context.Context, s *domain.ChatSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*domain.ChatSession, error)
	// List returns sessions matching filter, newest-updated first.
	List(ctx context.Context, filter ChatListFilter) ([]*domain.ChatSession, error)
	Update(ctx context.Context, s *domain.ChatSession) error
	Delete(ctx context.Context, sessionID string) error
}

// VisitorProfile is the lightly-collected identity a returning visitor is
// re-associated with, persisted outside the session row.
type VisitorProfile struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Language  string `json:"language"`
}

// VisitorStore persists visitor profiles keyed by session id so a returning
// visitor resumes their session without re-entering details.
type VisitorStore interface {
	Save(ctx context.Context, p VisitorProfile) error
	// Find returns nil with no error when the session id is unknown.
	Find(ctx context.Context, sessionID string) (*VisitorProfile, error)
}

// ReminderGuard grants at most one auto-reply reminder per session per
// window, across process restarts.
type ReminderGuard interface {
	Acquire(ctx context.Context, sessionID string) (bool, error)
	Release(ctx context.Context, sessionID string) error
}
