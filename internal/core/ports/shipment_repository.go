package ports

import (
	"context"

	"github.com/movemate/logistics-api/internal/core/domain"
)

// ShipmentListFilter carries the equality predicates pushed down to the row
// store. Free-text search and sorting happen in the service layer over the
// fetched snapshot.
type ShipmentListFilter struct {
	Status   string // optional; cancelled is accepted here defensively
	Category string // optional
}

// ShipmentRepository defines persistence operations for shipments.
type ShipmentRepository interface {
	Create(ctx context.Context, s *domain.Shipment) error
	FindByTrackingID(ctx context.Context, trackingID string) (*domain.Shipment, error)
	// List returns shipments matching filter, newest-updated first.
	List(ctx context.Context, filter ShipmentListFilter) ([]*domain.Shipment, error)
	// ListAll returns the full table ordered by created_at descending; the
	// analytics aggregator derives everything from this snapshot.
	ListAll(ctx context.Context) ([]*domain.Shipment, error)
	// Update replaces the mutable fields of the row identified by the
	// shipment's tracking id.
	Update(ctx context.Context, s *domain.Shipment) error
	Delete(ctx context.Context, trackingID string) error
}
