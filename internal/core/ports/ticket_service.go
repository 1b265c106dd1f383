package ports

import (
	"context"

	"github.com/movemate/logistics-api/internal/core/domain"
)

// CreateTicketInput carries a new support request.
type CreateTicketInput struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	Category string
}

// ListTicketsInput carries the ticket view's filter parameters.
type ListTicketsInput struct {
	Search   string // case-insensitive substring over ticket id, name, email, subject
	Status   string
	Category string
}

// TicketService defines the support-ticket use cases.
type TicketService interface {
	Create(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error)
	Get(ctx context.Context, ticketID string) (*domain.Ticket, error)
	List(ctx context.Context, input ListTicketsInput) ([]*domain.Ticket, error)
	// UpdateStatus sets any valid status; ordering is not enforced.
	UpdateStatus(ctx context.Context, ticketID string, status string) (*domain.Ticket, error)
	// AddResponse appends a reply. The first admin reply to an open ticket
	// advances it to in_progress.
	AddResponse(ctx context.Context, ticketID, message string, isAdmin bool) (*domain.Ticket, error)
}
