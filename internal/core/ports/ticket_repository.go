package ports

import (
	"context"

	"github.com/movemate/logistics-api/internal/core/domain"
)

// TicketListFilter carries the equality predicates for listing tickets.
type TicketListFilter struct {
	Status   string
	Category string
}

// TicketRepository defines persistence operations for support tickets.
type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) error
	FindByTicketID(ctx context.Context, ticketID string) (*domain.Ticket, error)
	// List returns tickets matching filter, newest-updated first.
	List(ctx context.Context, filter TicketListFilter) ([]*domain.Ticket, error)
	Update(ctx context.Context, t *domain.Ticket) error
}
