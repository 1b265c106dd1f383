package domain

import (
	"errors"
	"time"
)

// ChatStatus represents the chat session workflow state.
type ChatStatus string

const (
	ChatOpen     ChatStatus = "open"
	ChatPending  ChatStatus = "pending"
	ChatResolved ChatStatus = "resolved"
	ChatClosed   ChatStatus = "closed"
)

var ErrSessionNotFound = errors.New("chat session not found")

// Valid reports whether s is a known chat status.
func (s ChatStatus) Valid() bool {
	switch s {
	case ChatOpen, ChatPending, ChatResolved, ChatClosed:
		return true
	}
	return false
}

// ChatMessage is a single append-only message in a session. Authorship is
// encoded in two flags: visitor = neither set, bot = IsBot, human agent =
// IsAgent. A message is at most one of the three.
type ChatMessage struct {
	ID        string    `json:"id" bson:"id"`
	Content   string    `json:"content" bson:"content"`
	IsBot     bool      `json:"is_bot" bson:"is_bot"`
	IsAgent   bool      `json:"is_agent" bson:"is_agent"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// FromVisitor reports whether the message was authored by the visitor.
func (m ChatMessage) FromVisitor() bool {
	return !m.IsBot && !m.IsAgent
}

// ChatSession is a conversation thread keyed by a client-persisted session id.
type ChatSession struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	SessionID     string        `json:"session_id" bson:"session_id"`
	CustomerName  string        `json:"customer_name" bson:"customer_name"`
	CustomerEmail string        `json:"customer_email,omitempty" bson:"customer_email,omitempty"`
	Language      string        `json:"language" bson:"language"`
	Status        ChatStatus    `json:"status" bson:"status"`
	IsBot         bool          `json:"is_bot" bson:"is_bot"`
	UnreadCount   int           `json:"unread_count" bson:"unread_count"`
	Messages      []ChatMessage `json:"messages" bson:"messages"`
	// Version increases by one on every mutation. Subscribers drop change
	// notifications whose version is not greater than the last one applied,
	// so a realtime echo can never clobber a newer local copy.
	Version   int64     `json:"version" bson:"version"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// LastMessage returns the newest message, or nil for an empty session.
func (s *ChatSession) LastMessage() *ChatMessage {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}

// AwaitingReply reports whether the newest message was authored by the
// visitor, i.e. nobody (bot or agent) has responded yet.
func (s *ChatSession) AwaitingReply() bool {
	last := s.LastMessage()
	return last != nil && last.FromVisitor()
}
