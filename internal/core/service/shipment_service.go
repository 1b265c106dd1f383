package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/movemate/logistics-api/internal/api/metrics"
	"github.com/movemate/logistics-api/internal/core/domain"
	"github.com/movemate/logistics-api/internal/core/ports"
)

var ErrInvalidInput = errors.New("invalid shipment input")

type ShipmentService struct {
	repo   ports.ShipmentRepository
	logger zerolog.Logger
}

func NewShipmentService(repo ports.ShipmentRepository, logger zerolog.Logger) *ShipmentService {
	return &ShipmentService{repo: repo, logger: logger}
}

// Create runs the request-tracking flow: a fresh tracking id, a pending
// status, a fully precomputed (mostly incomplete) timeline, and a delivery
// estimate derived from category and weight.
func (s *ShipmentService) Create(ctx context.Context, input ports.CreateShipmentInput) (*domain.Shipment, error) {
	category := domain.PackageCategory(input.Category)
	if input.WeightKg <= 0 || !category.Valid() {
		return nil, ErrInvalidInput
	}

	now := time.Now().UTC()
	estimated := estimateDelivery(category, input.WeightKg, now)

	timeline := domain.NewTimeline(domain.StatusPending, now, uuid.NewString)
	// The final checkpoint's provisional timestamp is aligned to the estimate
	// so the tracking view shows a consistent date before completion.
	timeline[len(timeline)-1].Timestamp = estimated

	shipment := &domain.Shipment{
		TrackingID:         generateTrackingID(),
		SenderName:         input.SenderName,
		SenderPhone:        input.SenderPhone,
		ReceiverName:       input.ReceiverName,
		ReceiverPhone:      input.ReceiverPhone,
		PickupLocation:     input.PickupLocation,
		DeliveryLocation:   input.DeliveryLocation,
		CurrentLocation:    "Processing Center",
		PackageDescription: input.PackageDescription,
		WeightKg:           input.WeightKg,
		Category:           category,
		Status:             domain.StatusPending,
		EstimatedDelivery:  estimated,
		CreatedAt:          now,
		UpdatedAt:          now,
		Timeline:           timeline,
	}

	if err := s.repo.Create(ctx, shipment); err != nil {
		s.logger.Error().Err(err).Msg("failed to create shipment")
		return nil, err
	}

	metrics.ShipmentsCreatedTotal.WithLabelValues(string(category)).Inc()
	s.logger.Info().Str("tracking_id", shipment.TrackingID).Str("category", string(category)).Msg("shipment created")
	return shipment, nil
}

// Track normalizes a visitor-supplied tracking id and loads the shipment.
func (s *ShipmentService) Track(ctx context.Context, trackingID string) (*domain.Shipment, error) {
	id, err := normalizeTrackingID(trackingID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByTrackingID(ctx, id)
}

// List returns the directory view: equality filters pushed to the store,
// free-text search and sorting applied over the fetched snapshot.
func (s *ShipmentService) List(ctx context.Context, input ports.ListShipmentsInput) ([]*domain.Shipment, error) {
	if input.Status != "" && !domain.ShipmentStatus(input.Status).FilterValue() {
		return nil, domain.ErrInvalidStatus
	}

	shipments, err := s.repo.List(ctx, ports.ShipmentListFilter{
		Status:   input.Status,
		Category: input.Category,
	})
	if err != nil {
		return nil, err
	}

	shipments = filterShipments(shipments, input.Search)
	sortShipments(shipments, input.SortBy, input.SortDir)
	return shipments, nil
}

// Update applies an admin edit. A status change advances the timeline,
// completing every checkpoint up to and including the new status.
func (s *ShipmentService) Update(ctx context.Context, trackingID string, input ports.UpdateShipmentInput) (*domain.Shipment, error) {
	shipment, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if input.Status != nil {
		next := domain.ShipmentStatus(*input.Status)
		if !next.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		if next != shipment.Status {
			shipment.Timeline = domain.AdvanceTimeline(shipment.Timeline, next, now)
			shipment.Status = next
			metrics.ShipmentStatusTransitionsTotal.WithLabelValues(string(next)).Inc()
		}
	}
	if input.CurrentLocation != nil {
		shipment.CurrentLocation = *input.CurrentLocation
	}
	if input.WeightKg != nil {
		if *input.WeightKg <= 0 {
			return nil, ErrInvalidInput
		}
		shipment.WeightKg = *input.WeightKg
	}
	if input.Category != nil {
		category := domain.PackageCategory(*input.Category)
		if !category.Valid() {
			return nil, ErrInvalidInput
		}
		shipment.Category = category
	}
	if input.EstimatedDelivery != nil {
		shipment.EstimatedDelivery = *input.EstimatedDelivery
	}

	shipment.UpdatedAt = now
	if err := s.repo.Update(ctx, shipment); err != nil {
		s.logger.Error().Err(err).Str("tracking_id", trackingID).Msg("failed to update shipment")
		return nil, err
	}
	return shipment, nil
}

// MarkDelivered is the one-click console action for the final checkpoint.
func (s *ShipmentService) MarkDelivered(ctx context.Context, trackingID string) (*domain.Shipment, error) {
	shipment, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	shipment.Timeline = domain.AdvanceTimeline(shipment.Timeline, domain.StatusDelivered, now)
	shipment.Status = domain.StatusDelivered
	shipment.CurrentLocation = "Delivered"
	shipment.UpdatedAt = now

	if err := s.repo.Update(ctx, shipment); err != nil {
		return nil, err
	}
	metrics.ShipmentStatusTransitionsTotal.WithLabelValues(string(domain.StatusDelivered)).Inc()
	s.logger.Info().Str("tracking_id", trackingID).Msg("shipment marked delivered")
	return shipment, nil
}

// AddTimelineEvent appends an ad-hoc Custom Update entry. It never touches
// the five canonical checkpoints.
func (s *ShipmentService) AddTimelineEvent(ctx context.Context, trackingID, location, description string) (*domain.Shipment, error) {
	shipment, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if location == "" {
		location = shipment.CurrentLocation
	}
	shipment.Timeline = append(shipment.Timeline, domain.NewCustomEvent(uuid.NewString(), location, description, now))
	shipment.UpdatedAt = now

	if err := s.repo.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// Delete removes the row permanently. The only physical delete in the system.
func (s *ShipmentService) Delete(ctx context.Context, trackingID string) error {
	if err := s.repo.Delete(ctx, trackingID); err != nil {
		return err
	}
	s.logger.Info().Str("tracking_id", trackingID).Msg("shipment deleted")
	return nil
}

// estimateDelivery computes the promised delivery time: category base days
// (documents 2, fragile 5, else 3) plus one day per started 10 kg plus up to
// one jitter day, delivered between 09:00 and 17:59.
func estimateDelivery(category domain.PackageCategory, weightKg float64, from time.Time) time.Time {
	baseDays := 3
	switch category {
	case domain.CategoryDocuments:
		baseDays = 2
	case domain.CategoryFragile:
		baseDays = 5
	}

	days := baseDays + int(math.Ceil(weightKg/10)) + randomInt(2)
	hour := 9 + randomInt(9)

	due := from.AddDate(0, 0, days)
	return time.Date(due.Year(), due.Month(), due.Day(), hour, 0, 0, 0, due.Location())
}

// filterShipments applies the free-text search: case-insensitive substring
// over tracking id, sender, receiver and delivery location.
func filterShipments(shipments []*domain.Shipment, search string) []*domain.Shipment {
	if search == "" {
		return shipments
	}
	q := strings.ToLower(search)
	matched := shipments[:0]
	for _, s := range shipments {
		if strings.Contains(strings.ToLower(s.TrackingID), q) ||
			strings.Contains(strings.ToLower(s.SenderName), q) ||
			strings.Contains(strings.ToLower(s.ReceiverName), q) ||
			strings.Contains(strings.ToLower(s.DeliveryLocation), q) {
			matched = append(matched, s)
		}
	}
	return matched
}

// sortShipments orders the snapshot in place. Unknown sort keys fall back to
// updated_at; the default direction is descending. Descending swaps the
// operands rather than negating the ascending result, so equal keys compare
// as not-less in both directions and the stable sort keeps their input order.
func sortShipments(shipments []*domain.Shipment, sortBy, sortDir string) {
	asc := sortDir == "asc"
	sort.SliceStable(shipments, func(i, j int) bool {
		a, b := shipments[i], shipments[j]
		if !asc {
			a, b = b, a
		}
		switch sortBy {
		case "tracking_id":
			return a.TrackingID < b.TrackingID
		case "sender_name":
			return strings.ToLower(a.SenderName) < strings.ToLower(b.SenderName)
		case "receiver_name":
			return strings.ToLower(a.ReceiverName) < strings.ToLower(b.ReceiverName)
		case "status":
			return a.Status.Rank() < b.Status.Rank()
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
	})
}
