package ports

import (
	"context"

	"github.com/movemate/logistics-api/internal/core/domain"
)

// StartChatInput carries the visitor's opening of the chat widget. When
// SessionID matches an existing session it is resumed; otherwise a new one is
// created and the visitor profile persisted for later resumption.
type StartChatInput struct {
	SessionID     string
	CustomerName  string
	CustomerEmail string
	Language      string
}

// ListChatsInput carries the console view's filter parameters.
type ListChatsInput struct {
	Search string // case-insensitive substring over session id, customer name, email
	Status string
}

// ChatService defines the chat-session use cases.
type ChatService interface {
	StartSession(ctx context.Context, input StartChatInput) (*domain.ChatSession, error)
	GetSession(ctx context.Context, sessionID string) (*domain.ChatSession, error)
	// OpenSession is the agent-side read: selecting a session clears its
	// unread counter as a side effect.
	OpenSession(ctx context.Context, sessionID string) (*domain.ChatSession, error)
	List(ctx context.Context, input ListChatsInput) ([]*domain.ChatSession, error)
	// VisitorMessage appends a visitor message, reopens the session, bumps
	// the unread counter, and either answers immediately (bot mode) or
	// schedules the unanswered-conversation reminder.
	VisitorMessage(ctx context.Context, sessionID, content string) (*domain.ChatSession, error)
	// AgentMessage appends a human agent reply, advances pending sessions to
	// open, and cancels any scheduled reminder.
	AgentMessage(ctx context.Context, sessionID, content string) (*domain.ChatSession, error)
	SetBotMode(ctx context.Context, sessionID string, enabled bool) (*domain.ChatSession, error)
	UpdateStatus(ctx context.Context, sessionID string, status string) (*domain.ChatSession, error)
	Delete(ctx context.Context, sessionID string) error
	// DeliverReminder runs when a session's reminder timer fires: if the
	// conversation is still unanswered and not in bot mode, the fixed
	// auto-reply is appended. Safe to call against answered sessions.
	DeliverReminder(ctx context.Context, sessionID string) error
}
