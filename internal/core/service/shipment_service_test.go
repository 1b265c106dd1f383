package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/movemate/logistics-api/internal/core/domain"
	"github.com/movemate/logistics-api/internal/core/ports"
)

type stubShipmentRepo struct {
	createFn  func(ctx context.Context, s *domain.Shipment) error
	findFn    func(ctx context.Context, trackingID string) (*domain.Shipment, error)
	listFn    func(ctx context.Context, filter ports.ShipmentListFilter) ([]*domain.Shipment, error)
	listAllFn func(ctx context.Context) ([]*domain.Shipment, error)
	updateFn  func(ctx context.Context, s *domain.Shipment) error
	deleteFn  func(ctx context.Context, trackingID string) error
}

func (r *stubShipmentRepo) Create(ctx context.Context, s *domain.Shipment) error {
	return r.createFn(ctx, s)
}

func (r *stubShipmentRepo) FindByTrackingID(ctx context.Context, trackingID string) (*domain.Shipment, error) {
	return r.findFn(ctx, trackingID)
}

func (r *stubShipmentRepo) List(ctx context.Context, filter ports.ShipmentListFilter) ([]*domain.Shipment, error) {
	return r.listFn(ctx, filter)
}

func (r *stubShipmentRepo) ListAll(ctx context.Context) ([]*domain.Shipment, error) {
	return r.listAllFn(ctx)
}

func (r *stubShipmentRepo) Update(ctx context.Context, s *domain.Shipment) error {
	return r.updateFn(ctx, s)
}

func (r *stubShipmentRepo) Delete(ctx context.Context, trackingID string) error {
	return r.deleteFn(ctx, trackingID)
}

func validCreateInput() ports.CreateShipmentInput {
	return ports.CreateShipmentInput{
		SenderName:         "Alice Mbeki",
		SenderPhone:        "+27 82 000 0000",
		ReceiverName:       "Bob Okoro",
		ReceiverPhone:      "+234 80 111 1111",
		PickupLocation:     "Cape Town, South Africa",
		DeliveryLocation:   "Lagos, Nigeria",
		PackageDescription: "Legal documents",
		WeightKg:           2.5,
		Category:           "documents",
	}
}

func TestShipmentService_Create(t *testing.T) {
	var saved *domain.Shipment
	repo := &stubShipmentRepo{
		createFn: func(ctx context.Context, s *domain.Shipment) error {
			saved = s
			return nil
		},
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	shipment, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatalf("shipment not persisted")
	}

	if !trackingIDPattern.MatchString(shipment.TrackingID) {
		t.Errorf("tracking id %q does not match pattern", shipment.TrackingID)
	}
	if shipment.Status != domain.StatusPending {
		t.Errorf("status = %q, want pending", shipment.Status)
	}
	if shipment.CurrentLocation != "Processing Center" {
		t.Errorf("current location = %q", shipment.CurrentLocation)
	}
	if len(shipment.Timeline) != 5 {
		t.Fatalf("timeline has %d entries, want 5", len(shipment.Timeline))
	}
	if !shipment.Timeline[0].Completed {
		t.Errorf("first checkpoint should be completed on creation")
	}
	for _, ev := range shipment.Timeline[1:] {
		if ev.Completed {
			t.Errorf("checkpoint %q should not be completed", ev.Status)
		}
	}
	if !shipment.Timeline[4].Timestamp.Equal(shipment.EstimatedDelivery) {
		t.Errorf("final checkpoint timestamp not aligned to estimate")
	}
}

func TestShipmentService_Create_EstimateBounds(t *testing.T) {
	repo := &stubShipmentRepo{
		createFn: func(ctx context.Context, s *domain.Shipment) error { return nil },
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	// documents base 2 days + 1 day for 2.5kg + 0..1 jitter: 3 or 4 calendar
	// days out, delivered between 09:00 and 17:59.
	for i := 0; i < 20; i++ {
		now := time.Now().UTC()
		shipment, err := svc.Create(context.Background(), validCreateInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		days := int(shipment.EstimatedDelivery.Truncate(24*time.Hour).Sub(now.Truncate(24*time.Hour)).Hours() / 24)
		if days < 3 || days > 4 {
			t.Fatalf("estimate %d calendar days out, want 3 or 4", days)
		}
		h := shipment.EstimatedDelivery.Hour()
		if h < 9 || h > 17 {
			t.Fatalf("estimate hour = %d, want 9..17", h)
		}
	}
}

func TestShipmentService_Create_Invalid(t *testing.T) {
	repo := &stubShipmentRepo{
		createFn: func(ctx context.Context, s *domain.Shipment) error {
			t.Fatalf("repo should not be called")
			return nil
		},
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	input := validCreateInput()
	input.WeightKg = 0
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero weight: err = %v, want ErrInvalidInput", err)
	}

	input = validCreateInput()
	input.Category = "weapons"
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown category: err = %v, want ErrInvalidInput", err)
	}
}

func TestShipmentService_Track_Normalizes(t *testing.T) {
	repo := &stubShipmentRepo{
		findFn: func(ctx context.Context, trackingID string) (*domain.Shipment, error) {
			if trackingID != "MM-LX-A1B2C" {
				t.Fatalf("repo got %q, want normalized id", trackingID)
			}
			return &domain.Shipment{TrackingID: trackingID}, nil
		},
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	if _, err := svc.Track(context.Background(), "  mm-lx-a1b2c "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Track(context.Background(), "garbage"); !errors.Is(err, domain.ErrInvalidTrackingID) {
		t.Errorf("err = %v, want ErrInvalidTrackingID", err)
	}
}

func TestShipmentService_List_SearchAndSort(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubShipmentRepo{
		// fresh slice per call: the search filter compacts in place
		listFn: func(ctx context.Context, filter ports.ShipmentListFilter) ([]*domain.Shipment, error) {
			return []*domain.Shipment{
				{TrackingID: "MM-LX-AAAAA", SenderName: "Alice", DeliveryLocation: "Lagos, Nigeria", UpdatedAt: base.Add(1 * time.Hour)},
				{TrackingID: "MM-LX-BBBBB", SenderName: "Bob", DeliveryLocation: "Accra, Ghana", UpdatedAt: base.Add(3 * time.Hour)},
				{TrackingID: "MM-LX-CCCCC", SenderName: "Carol", DeliveryLocation: "Lagos Island, Nigeria", UpdatedAt: base.Add(2 * time.Hour)},
			}, nil
		},
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	got, err := svc.List(context.Background(), ports.ListShipmentsInput{Search: "lagos"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("search matched %d rows, want 2", len(got))
	}
	// default sort is updated_at descending
	if got[0].TrackingID != "MM-LX-CCCCC" || got[1].TrackingID != "MM-LX-AAAAA" {
		t.Errorf("unexpected order: %s, %s", got[0].TrackingID, got[1].TrackingID)
	}

	got, err = svc.List(context.Background(), ports.ListShipmentsInput{SortBy: "sender_name", SortDir: "asc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].SenderName != "Alice" || got[2].SenderName != "Carol" {
		t.Errorf("sender sort wrong: %s..%s", got[0].SenderName, got[2].SenderName)
	}
}

func TestSortShipments_TiesKeepInputOrder(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []*domain.Shipment{
		{TrackingID: "MM-LX-AAAAA", SenderName: "Alice", UpdatedAt: ts},
		{TrackingID: "MM-LX-BBBBB", SenderName: "Alice", UpdatedAt: ts},
		{TrackingID: "MM-LX-CCCCC", SenderName: "Alice", UpdatedAt: ts},
	}

	// default: updated_at descending with all timestamps equal
	sortShipments(rows, "", "")
	for i, want := range []string{"MM-LX-AAAAA", "MM-LX-BBBBB", "MM-LX-CCCCC"} {
		if rows[i].TrackingID != want {
			t.Fatalf("tied rows reordered: got %s at %d, want %s", rows[i].TrackingID, i, want)
		}
	}

	// tied key, explicit descending on a different field
	sortShipments(rows, "sender_name", "desc")
	for i, want := range []string{"MM-LX-AAAAA", "MM-LX-BBBBB", "MM-LX-CCCCC"} {
		if rows[i].TrackingID != want {
			t.Fatalf("tied sender sort reordered: got %s at %d, want %s", rows[i].TrackingID, i, want)
		}
	}
}

func TestShipmentService_List_RejectsUnknownStatusFilter(t *testing.T) {
	repo := &stubShipmentRepo{
		listFn: func(ctx context.Context, filter ports.ShipmentListFilter) ([]*domain.Shipment, error) {
			return nil, nil
		},
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	if _, err := svc.List(context.Background(), ports.ListShipmentsInput{Status: "lost"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}

	// cancelled is filter-only but legal here
	if _, err := svc.List(context.Background(), ports.ListShipmentsInput{Status: "cancelled"}); err != nil {
		t.Errorf("cancelled filter rejected: %v", err)
	}
}

func shipmentFixture(status domain.ShipmentStatus) *domain.Shipment {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Shipment{
		TrackingID:      "MM-LX-A1B2C",
		Status:          status,
		CurrentLocation: "Local Hub",
		WeightKg:        4,
		Category:        domain.CategoryClothing,
		Timeline:        domain.NewTimeline(status, created, func() string { return "id" }),
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

func TestShipmentService_Update_StatusAdvancesTimeline(t *testing.T) {
	row := shipmentFixture(domain.StatusPending)
	repo := &stubShipmentRepo{
		findFn: func(ctx context.Context, trackingID string) (*domain.Shipment, error) {
			return row, nil
		},
		updateFn: func(ctx context.Context, s *domain.Shipment) error { return nil },
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	status := "in_transit"
	got, err := svc.Update(context.Background(), row.TrackingID, ports.UpdateShipmentInput{Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusInTransit {
		t.Errorf("status = %q", got.Status)
	}
	// ranks 0..2 completed, the skipped picked_up included
	for i, ev := range got.Timeline {
		want := i <= 2
		if ev.Completed != want {
			t.Errorf("checkpoint %d completed = %v, want %v", i, ev.Completed, want)
		}
	}
}

func TestShipmentService_Update_RejectsCancelled(t *testing.T) {
	repo := &stubShipmentRepo{
		findFn: func(ctx context.Context, trackingID string) (*domain.Shipment, error) {
			return shipmentFixture(domain.StatusPending), nil
		},
		updateFn: func(ctx context.Context, s *domain.Shipment) error {
			t.Fatalf("update should not be called")
			return nil
		},
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	status := "cancelled"
	if _, err := svc.Update(context.Background(), "MM-LX-A1B2C", ports.UpdateShipmentInput{Status: &status}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestShipmentService_Update_PatchesFields(t *testing.T) {
	row := shipmentFixture(domain.StatusInTransit)
	repo := &stubShipmentRepo{
		findFn: func(ctx context.Context, trackingID string) (*domain.Shipment, error) {
			return row, nil
		},
		updateFn: func(ctx context.Context, s *domain.Shipment) error { return nil },
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	loc := "Regional Distribution Center"
	weight := 7.5
	category := "fragile"
	eta := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	got, err := svc.Update(context.Background(), row.TrackingID, ports.UpdateShipmentInput{
		CurrentLocation:   &loc,
		WeightKg:          &weight,
		Category:          &category,
		EstimatedDelivery: &eta,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurrentLocation != loc || got.WeightKg != weight || got.Category != domain.CategoryFragile || !got.EstimatedDelivery.Equal(eta) {
		t.Errorf("patch not applied: %+v", got)
	}
	if got.Status != domain.StatusInTransit {
		t.Errorf("status changed unexpectedly to %q", got.Status)
	}
}

func TestShipmentService_MarkDelivered(t *testing.T) {
	row := shipmentFixture(domain.StatusOutForDelivery)
	repo := &stubShipmentRepo{
		findFn: func(ctx context.Context, trackingID string) (*domain.Shipment, error) {
			return row, nil
		},
		updateFn: func(ctx context.Context, s *domain.Shipment) error { return nil },
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	got, err := svc.MarkDelivered(context.Background(), row.TrackingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusDelivered {
		t.Errorf("status = %q", got.Status)
	}
	if got.CurrentLocation != "Delivered" {
		t.Errorf("current location = %q", got.CurrentLocation)
	}
	for i, ev := range got.Timeline {
		if !ev.Completed {
			t.Errorf("checkpoint %d not completed", i)
		}
	}
}

func TestShipmentService_AddTimelineEvent(t *testing.T) {
	row := shipmentFixture(domain.StatusInTransit)
	repo := &stubShipmentRepo{
		findFn: func(ctx context.Context, trackingID string) (*domain.Shipment, error) {
			return row, nil
		},
		updateFn: func(ctx context.Context, s *domain.Shipment) error { return nil },
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	got, err := svc.AddTimelineEvent(context.Background(), row.TrackingID, "", "Held at customs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := got.Timeline[len(got.Timeline)-1]
	if last.Status != domain.CustomEventLabel {
		t.Errorf("label = %q", last.Status)
	}
	if last.Location != "Local Hub" {
		t.Errorf("empty location should fall back to current location, got %q", last.Location)
	}
	if last.Description != "Held at customs" {
		t.Errorf("description = %q", last.Description)
	}
	if !last.Completed {
		t.Errorf("custom entry should be completed")
	}
}

func TestShipmentService_Delete_Propagates(t *testing.T) {
	repo := &stubShipmentRepo{
		deleteFn: func(ctx context.Context, trackingID string) error {
			return domain.ErrShipmentNotFound
		},
	}
	svc := NewShipmentService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), "MM-LX-ZZZZZ"); !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Errorf("err = %v, want ErrShipmentNotFound", err)
	}
}
