package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/movemate/logistics-api/internal/core/domain"
	"github.com/movemate/logistics-api/internal/core/ports"
)

// reportNow is a Wednesday; the trend week runs Mon Mar 10 .. Sun Mar 16.
var reportNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

func analyticsFixture() []*domain.Shipment {
	day := func(d, hour int) time.Time {
		return time.Date(2025, 3, d, hour, 0, 0, 0, time.UTC)
	}
	return []*domain.Shipment{
		// delivered on time: updated before the estimate
		{
			Status: domain.StatusDelivered, Category: domain.CategoryDocuments,
			CreatedAt: day(10, 9), UpdatedAt: day(12, 10), EstimatedDelivery: day(13, 12),
		},
		// delivered late
		{
			Status: domain.StatusDelivered, Category: domain.CategoryElectronics,
			CreatedAt: day(10, 9), UpdatedAt: day(14, 10), EstimatedDelivery: day(12, 12),
		},
		{
			Status: domain.StatusInTransit, Category: domain.CategoryDocuments,
			CreatedAt: day(11, 9), UpdatedAt: day(11, 9), EstimatedDelivery: day(15, 12),
		},
		{
			Status: domain.StatusOutForDelivery, Category: domain.CategoryFragile,
			CreatedAt: day(12, 9), UpdatedAt: day(12, 9), EstimatedDelivery: day(16, 12),
		},
		{
			Status: domain.StatusPending, Category: domain.CategoryDocuments,
			CreatedAt: day(12, 11), UpdatedAt: day(12, 11), EstimatedDelivery: day(17, 12),
		},
		// outside the current week, lands in no trend bucket
		{
			Status: domain.StatusDelivered, Category: domain.CategoryFood,
			CreatedAt: day(2, 9), UpdatedAt: day(4, 10), EstimatedDelivery: day(5, 12),
		},
	}
}

func TestBuildReport_Counts(t *testing.T) {
	report := buildReport(analyticsFixture(), reportNow)

	if report.Total != 6 {
		t.Errorf("total = %d", report.Total)
	}
	if report.Delivered != 3 {
		t.Errorf("delivered = %d", report.Delivered)
	}
	if report.InTransit != 2 {
		t.Errorf("in transit = %d, want in_transit plus out_for_delivery", report.InTransit)
	}
	if report.Pending != 1 {
		t.Errorf("pending = %d", report.Pending)
	}
	if report.PickedUp != 0 {
		t.Errorf("picked up = %d", report.PickedUp)
	}
}

func TestBuildReport_Rates(t *testing.T) {
	report := buildReport(analyticsFixture(), reportNow)

	if report.DeliveryRate != "50.0" {
		t.Errorf("delivery rate = %q", report.DeliveryRate)
	}
	// 2 of 3 delivered were on time (the late one missed its estimate)
	if report.OnTimeRate != "66.7" {
		t.Errorf("on-time rate = %q", report.OnTimeRate)
	}
	// ceil days between created and estimate: 4 + 3 + 4 over 3 delivered
	if report.AvgDeliveryDays != "3.7" {
		t.Errorf("avg delivery days = %q", report.AvgDeliveryDays)
	}
}

func TestBuildReport_EmptySnapshot(t *testing.T) {
	report := buildReport(nil, reportNow)

	if report.DeliveryRate != "0" {
		t.Errorf("delivery rate = %q, want literal 0", report.DeliveryRate)
	}
	if report.OnTimeRate != "0" {
		t.Errorf("on-time rate = %q, want literal 0", report.OnTimeRate)
	}
	if report.AvgDeliveryDays != "N/A" {
		t.Errorf("avg delivery days = %q", report.AvgDeliveryDays)
	}
	if len(report.StatusDistribution) != 0 {
		t.Errorf("status distribution should be empty, got %v", report.StatusDistribution)
	}
	if len(report.WeeklyTrend) != 7 {
		t.Errorf("weekly trend should still have 7 buckets, got %d", len(report.WeeklyTrend))
	}
}

func TestBuildReport_StatusDistributionDropsZeroBuckets(t *testing.T) {
	report := buildReport(analyticsFixture(), reportNow)

	want := []ports.NamedCount{
		{Name: "Delivered", Value: 3},
		{Name: "In Transit", Value: 2},
		{Name: "Pending", Value: 1},
	}
	if len(report.StatusDistribution) != len(want) {
		t.Fatalf("got %d buckets, want %d: %v", len(report.StatusDistribution), len(want), report.StatusDistribution)
	}
	for i, b := range want {
		if report.StatusDistribution[i] != b {
			t.Errorf("bucket %d = %+v, want %+v", i, report.StatusDistribution[i], b)
		}
	}
}

func TestBuildReport_WeeklyTrend(t *testing.T) {
	report := buildReport(analyticsFixture(), reportNow)

	if len(report.WeeklyTrend) != 7 {
		t.Fatalf("got %d trend points", len(report.WeeklyTrend))
	}
	labels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for i, p := range report.WeeklyTrend {
		if p.Day != labels[i] {
			t.Errorf("point %d label = %q, want %q", i, p.Day, labels[i])
		}
	}

	// On Wednesday (weekday 3) bucket 0 is shifted back to Sunday Mar 9, so
	// the "Mon" label covers Mar 9, "Tue" covers Mar 10 and so on. The two
	// delivered rows created Mar 10 land under "Tue", the in-transit row under
	// "Wed", the Wednesday rows under "Thu". Mar 2 falls outside the window.
	wantShipments := []int{0, 2, 1, 2, 0, 0, 0}
	wantDelivered := []int{0, 2, 0, 0, 0, 0, 0}
	for i := range labels {
		if report.WeeklyTrend[i].Shipments != wantShipments[i] {
			t.Errorf("%s shipments = %d, want %d", labels[i], report.WeeklyTrend[i].Shipments, wantShipments[i])
		}
		if report.WeeklyTrend[i].Delivered != wantDelivered[i] {
			t.Errorf("%s delivered = %d, want %d", labels[i], report.WeeklyTrend[i].Delivered, wantDelivered[i])
		}
	}
}

func TestBuildReport_WeeklyTrendMidnightBoundary(t *testing.T) {
	// Two seconds across local midnight must split into adjacent buckets:
	// the day boundary is inclusive at 00:00:00 and exclusive at the next.
	shipments := []*domain.Shipment{
		{Status: domain.StatusPending, Category: domain.CategoryOther, CreatedAt: time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)},
		{Status: domain.StatusPending, Category: domain.CategoryOther, CreatedAt: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)},
		{Status: domain.StatusPending, Category: domain.CategoryOther, CreatedAt: time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC)},
	}
	report := buildReport(shipments, reportNow)

	// with reportNow on Wednesday, Mar 10 falls under "Tue" and Mar 11 under "Wed"
	want := []int{0, 1, 2, 0, 0, 0, 0}
	for i, p := range report.WeeklyTrend {
		if p.Shipments != want[i] {
			t.Errorf("%s shipments = %d, want %d", p.Day, p.Shipments, want[i])
		}
	}
}

func TestBuildReport_WeeklyTrendOnSunday(t *testing.T) {
	// Weekday numbering puts Sunday at 0, so on a Sunday the window runs
	// forward from today and the Sunday row lands under the "Mon" label.
	sunday := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	shipments := []*domain.Shipment{
		{Status: domain.StatusPending, Category: domain.CategoryOther, CreatedAt: sunday},
	}
	report := buildReport(shipments, sunday)

	for i, p := range report.WeeklyTrend {
		want := 0
		if i == 0 {
			want = 1
		}
		if p.Shipments != want {
			t.Errorf("%s shipments = %d, want %d", p.Day, p.Shipments, want)
		}
	}
}

func TestBuildReport_CategoryDistribution(t *testing.T) {
	report := buildReport(analyticsFixture(), reportNow)

	want := []ports.NamedCount{
		{Name: "Documents", Value: 3},
		{Name: "Electronics", Value: 1},
		{Name: "Fragile", Value: 1},
		{Name: "Food", Value: 1},
	}
	if len(report.CategoryDistribution) != len(want) {
		t.Fatalf("got %d categories: %v", len(report.CategoryDistribution), report.CategoryDistribution)
	}
	for i, b := range want {
		if report.CategoryDistribution[i] != b {
			t.Errorf("category %d = %+v, want %+v", i, report.CategoryDistribution[i], b)
		}
	}
}

func TestAnalyticsService_Report(t *testing.T) {
	repo := &stubShipmentRepo{
		listAllFn: func(ctx context.Context) ([]*domain.Shipment, error) {
			return analyticsFixture(), nil
		},
	}
	svc := NewAnalyticsService(repo, zerolog.Nop())

	report, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Total != 6 {
		t.Errorf("total = %d", report.Total)
	}
}
