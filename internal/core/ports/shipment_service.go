package ports

import (
	"context"
	"time"

	"github.com/movemate/logistics-api/internal/core/domain"
)

// CreateShipmentInput carries all data from the request-tracking flow.
type CreateShipmentInput struct {
	SenderName         string
	SenderPhone        string
	ReceiverName       string
	ReceiverPhone      string
	PickupLocation     string
	DeliveryLocation   string
	PackageDescription string
	WeightKg           float64
	Category           string
}

// UpdateShipmentInput carries an admin edit. Nil fields are left unchanged.
// A status change advances the timeline as a side effect.
type UpdateShipmentInput struct {
	Status            *string
	CurrentLocation   *string
	WeightKg          *float64
	Category          *string
	EstimatedDelivery *time.Time
}

// ListShipmentsInput carries the directory view's filter/sort parameters.
type ListShipmentsInput struct {
	Search   string // case-insensitive substring over tracking id, parties, delivery location
	Status   string
	Category string
	SortBy   string // tracking_id | sender_name | receiver_name | status | created_at | updated_at
	SortDir  string // asc | desc (default desc)
}

// ShipmentService defines the shipment use cases.
type ShipmentService interface {
	// Create runs the request-tracking flow: generates a tracking id, builds
	// the pending timeline and computes the delivery estimate.
	Create(ctx context.Context, input CreateShipmentInput) (*domain.Shipment, error)
	// Track normalizes and validates a visitor-supplied tracking id, then
	// loads the shipment.
	Track(ctx context.Context, trackingID string) (*domain.Shipment, error)
	List(ctx context.Context, input ListShipmentsInput) ([]*domain.Shipment, error)
	Update(ctx context.Context, trackingID string, input UpdateShipmentInput) (*domain.Shipment, error)
	MarkDelivered(ctx context.Context, trackingID string) (*domain.Shipment, error)
	AddTimelineEvent(ctx context.Context, trackingID, location, description string) (*domain.Shipment, error)
	Delete(ctx context.Context, trackingID string) error
}
