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

type TicketService struct {
	repo   ports.TicketRepository
	logger zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, logger zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, logger: logger}
}

func (s *TicketService) Create(ctx context.Context, input ports.CreateTicketInput) (*domain.Ticket, error) {
	category := domain.TicketCategory(input.Category)
	if category == "" {
		category = domain.TicketGeneral
	}

	now := time.Now().UTC()
	ticket := &domain.Ticket{
		TicketID:  generateTicketID(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		Category:  category,
		Status:    domain.TicketOpen,
		Responses: []domain.TicketResponse{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		s.logger.Error().Err(err).Msg("failed to create ticket")
		return nil, err
	}

	metrics.TicketsCreatedTotal.WithLabelValues(string(category)).Inc()
	s.logger.Info().Str("ticket_id", ticket.TicketID).Str("category", string(category)).Msg("ticket created")
	return ticket, nil
}

func (s *TicketService) Get(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.repo.FindByTicketID(ctx, ticketID)
}

func (s *TicketService) List(ctx context.Context, input ports.ListTicketsInput) ([]*domain.Ticket, error) {
	tickets, err := s.repo.List(ctx, ports.TicketListFilter{
		Status:   input.Status,
		Category: input.Category,
	})
	if err != nil {
		return nil, err
	}

	tickets = filterTickets(tickets, input.Search)
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].UpdatedAt.After(tickets[j].UpdatedAt)
	})
	return tickets, nil
}

// UpdateStatus sets any valid status. Transitions are free-form; the only
// enforced rule lives in AddResponse.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, status string) (*domain.Ticket, error) {
	next := domain.TicketStatus(status)
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	ticket, err := s.repo.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	ticket.Status = next
	ticket.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// AddResponse appends a reply. The first admin reply to an open ticket
// auto-advances it to in_progress; a reply to an in_progress or resolved
// ticket leaves the status untouched.
func (s *TicketService) AddResponse(ctx context.Context, ticketID, message string, isAdmin bool) (*domain.Ticket, error) {
	ticket, err := s.repo.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ticket.Responses = append(ticket.Responses, domain.TicketResponse{
		ID:        uuid.NewString(),
		Message:   message,
		IsAdmin:   isAdmin,
		Timestamp: now,
	})
	if isAdmin && ticket.Status == domain.TicketOpen {
		ticket.Status = domain.TicketInProgress
	}
	ticket.UpdatedAt = now

	if err := s.repo.Update(ctx, ticket); err != nil {
		s.logger.Error().Err(err).Str("ticket_id", ticketID).Msg("failed to append ticket response")
		return nil, err
	}

	author := "customer"
	if isAdmin {
		author = "admin"
	}
	metrics.TicketRepliesTotal.WithLabelValues(author).Inc()
	return ticket, nil
}

func filterTickets(tickets []*domain.Ticket, search string) []*domain.Ticket {
	if search == "" {
		return tickets
	}
	q := strings.ToLower(search)
	matched := tickets[:0]
	for _, t := range tickets {
		if strings.Contains(strings.ToLower(t.TicketID), q) ||
			strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Email), q) ||
			strings.Contains(strings.ToLower(t.Subject), q) {
			matched = append(matched, t)
		}
	}
	return matched
}
