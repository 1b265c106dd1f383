package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/movemate/logistics-api/internal/api/metrics"
	"github.com/movemate/logistics-api/internal/core/domain"
	"github.com/movemate/logistics-api/internal/core/ports"
)

// autoReplyMessage is appended when a visitor message goes unanswered for the
// reminder window.
const autoReplyMessage = "Thank you for your message. Our support team will respond shortly. In the meantime, you might find answers in our FAQ section."

// ReminderScheduler owns the per-session reminder timer. Schedule resets any
// running timer for the session; it never stacks a second one.
type ReminderScheduler interface {
	Schedule(sessionID string)
	Cancel(sessionID string)
}

type ChatService struct {
	repo      ports.ChatRepository
	visitors  ports.VisitorStore
	guard     ports.ReminderGuard
	scheduler ReminderScheduler
	logger    zerolog.Logger
}

func NewChatService(
	repo ports.ChatRepository,
	visitors ports.VisitorStore,
	guard ports.ReminderGuard,
	scheduler ReminderScheduler,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		repo:      repo,
		visitors:  visitors,
		guard:     guard,
		scheduler: scheduler,
		logger:    logger,
	}
}

// StartSession resumes the session named by the widget's persisted id, or
// creates a fresh one. Visitor details are re-hydrated from the visitor store
// when the widget did not send them.
func (s *ChatService) StartSession(ctx context.Context, input ports.StartChatInput) (*domain.ChatSession, error) {
	if input.SessionID != "" {
		session, err := s.repo.FindBySessionID(ctx, input.SessionID)
		if err == nil {
			return session, nil
		}
		if err != domain.ErrSessionNotFound {
			return nil, err
		}
		// The persisted id points at a deleted row; fall through and start over.
	}

	name, email, lang := input.CustomerName, input.CustomerEmail, input.Language
	if name == "" && input.SessionID != "" {
		if profile, err := s.visitors.Find(ctx, input.SessionID); err == nil && profile != nil {
			name, email = profile.Name, profile.Email
			if lang == "" {
				lang = profile.Language
			}
		}
	}
	if lang == "" {
		lang = "en"
	}

	now := time.Now().UTC()
	session := &domain.ChatSession{
		SessionID:     generateSessionID(),
		CustomerName:  name,
		CustomerEmail: email,
		Language:      lang,
		Status:        domain.ChatOpen,
		IsBot:         false,
		UnreadCount:   0,
		Messages: []domain.ChatMessage{{
			ID:        uuid.NewString(),
			Content:   chatGreeting,
			IsBot:     true,
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		s.logger.Error().Err(err).Msg("failed to create chat session")
		return nil, err
	}

	if err := s.visitors.Save(ctx, ports.VisitorProfile{
		SessionID: session.SessionID,
		Name:      name,
		Email:     email,
		Language:  lang,
	}); err != nil {
		// Resume just degrades to a fresh session next visit.
		s.logger.Warn().Err(err).Str("session_id", session.SessionID).Msg("failed to persist visitor profile")
	}

	s.logger.Info().Str("session_id", session.SessionID).Msg("chat session started")
	return session, nil
}

func (s *ChatService) GetSession(ctx context.Context, sessionID string) (*domain.ChatSession, error) {
	return s.repo.FindBySessionID(ctx, sessionID)
}

// OpenSession is the agent selecting a conversation: any unread counter is
// cleared as a side effect, independent of message content.
func (s *ChatService) OpenSession(ctx context.Context, sessionID string) (*domain.ChatSession, error) {
	session, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UnreadCount == 0 {
		return session, nil
	}

	session.UnreadCount = 0
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ChatService) List(ctx context.Context, input ports.ListChatsInput) ([]*domain.ChatSession, error) {
	sessions, err := s.repo.List(ctx, ports.ChatListFilter{Status: input.Status})
	if err != nil {
		return nil, err
	}

	sessions = filterSessions(sessions, input.Search)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

// VisitorMessage appends a visitor message and reopens the session. In bot
// mode the canned bot answer is appended immediately; otherwise the
// unanswered-conversation reminder is (re)scheduled — reset, never stacked.
func (s *ChatService) VisitorMessage(ctx context.Context, sessionID, content string) (*domain.ChatSession, error) {
	session, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session.Messages = append(session.Messages, domain.ChatMessage{
		ID:        uuid.NewString(),
		Content:   content,
		Timestamp: now,
	})
	session.Status = domain.ChatOpen
	session.UnreadCount++
	session.UpdatedAt = now
	metrics.ChatMessagesTotal.WithLabelValues("visitor").Inc()

	if session.IsBot {
		session.Messages = append(session.Messages, domain.ChatMessage{
			ID:        uuid.NewString(),
			Content:   botReply(content),
			IsBot:     true,
			Timestamp: now,
		})
		metrics.ChatMessagesTotal.WithLabelValues("bot").Inc()
	}

	if err := s.repo.Update(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to append visitor message")
		return nil, err
	}

	if !session.IsBot {
		s.scheduler.Schedule(sessionID)
	}
	return session, nil
}

// AgentMessage appends a human agent reply, advances pending sessions to
// open, and cancels the reminder window for the session.
func (s *ChatService) AgentMessage(ctx context.Context, sessionID, content string) (*domain.ChatSession, error) {
	session, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session.Messages = append(session.Messages, domain.ChatMessage{
		ID:        uuid.NewString(),
		Content:   content,
		IsAgent:   true,
		Timestamp: now,
	})
	if session.Status == domain.ChatPending {
		session.Status = domain.ChatOpen
	}
	session.UpdatedAt = now

	if err := s.repo.Update(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to append agent message")
		return nil, err
	}

	s.scheduler.Cancel(sessionID)
	if err := s.guard.Release(ctx, sessionID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to release reminder guard")
	}
	metrics.ChatMessagesTotal.WithLabelValues("agent").Inc()
	return session, nil
}

func (s *ChatService) SetBotMode(ctx context.Context, sessionID string, enabled bool) (*domain.ChatSession, error) {
	session, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.IsBot = enabled
	session.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	if enabled {
		s.scheduler.Cancel(sessionID)
	}
	return session, nil
}

func (s *ChatService) UpdateStatus(ctx context.Context, sessionID string, status string) (*domain.ChatSession, error) {
	next := domain.ChatStatus(status)
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	session, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Status = next
	session.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ChatService) Delete(ctx context.Context, sessionID string) error {
	s.scheduler.Cancel(sessionID)
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", sessionID).Msg("chat session deleted")
	return nil
}

// DeliverReminder fires when a session's reminder timer elapses. The session
// is re-read so a reply or bot-mode switch that raced the timer wins: the
// auto-reply is appended only to a still-unanswered, non-bot session. The
// guard keeps the reminder at-most-once per window across restarts.
func (s *ChatService) DeliverReminder(ctx context.Context, sessionID string) error {
	ok, err := s.guard.Acquire(ctx, sessionID)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("reminder guard unavailable, delivering anyway")
	} else if !ok {
		return nil
	}

	session, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return nil
		}
		return err
	}
	if session.IsBot || !session.AwaitingReply() {
		return nil
	}

	now := time.Now().UTC()
	session.Messages = append(session.Messages, domain.ChatMessage{
		ID:        uuid.NewString(),
		Content:   autoReplyMessage,
		IsAgent:   true,
		Timestamp: now,
	})
	session.UpdatedAt = now

	if err := s.repo.Update(ctx, session); err != nil {
		return err
	}

	metrics.ChatRemindersSentTotal.Inc()
	s.logger.Info().Str("session_id", sessionID).Msg("auto-reply reminder delivered")
	return nil
}

func filterSessions(sessions []*domain.ChatSession, search string) []*domain.ChatSession {
	if search == "" {
		return sessions
	}
	q := strings.ToLower(search)
	matched := sessions[:0]
	for _, c := range sessions {
		if strings.Contains(strings.ToLower(c.SessionID), q) ||
			strings.Contains(strings.ToLower(c.CustomerName), q) ||
			strings.Contains(strings.ToLower(c.CustomerEmail), q) {
			matched = append(matched, c)
		}
	}
	return matched
}
