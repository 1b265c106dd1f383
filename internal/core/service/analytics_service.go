package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/movemate/logistics-api/internal/core/domain"
	"github.com/movemate/logistics-api/internal/core/ports"
)

// AnalyticsService derives the dashboard aggregates from the full shipment
// snapshot on every call. No incremental maintenance: at this data scale a
// single pass is cheaper than keeping counters coherent.
type AnalyticsService struct {
	repo   ports.ShipmentRepository
	logger zerolog.Logger
}

func NewAnalyticsService(repo ports.ShipmentRepository, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, logger: logger}
}

func (s *AnalyticsService) Report(ctx context.Context) (*ports.AnalyticsReport, error) {
	shipments, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load shipments for analytics")
		return nil, err
	}
	return buildReport(shipments, time.Now()), nil
}

func buildReport(shipments []*domain.Shipment, now time.Time) *ports.AnalyticsReport {
	var delivered, inTransit, pending, pickedUp int
	for _, s := range shipments {
		switch s.Status {
		case domain.StatusDelivered:
			delivered++
		case domain.StatusInTransit, domain.StatusOutForDelivery:
			inTransit++
		case domain.StatusPending:
			pending++
		case domain.StatusPickedUp:
			pickedUp++
		}
	}

	total := len(shipments)
	report := &ports.AnalyticsReport{
		Total:                total,
		Delivered:            delivered,
		InTransit:            inTransit,
		Pending:              pending,
		PickedUp:             pickedUp,
		DeliveryRate:         rate(delivered, total),
		OnTimeRate:           onTimeRate(shipments),
		AvgDeliveryDays:      averageDeliveryDays(shipments),
		WeeklyTrend:          weeklyTrend(shipments, now),
		CategoryDistribution: categoryDistribution(shipments),
	}

	// Zero-count buckets are dropped; in_transit and out_for_delivery share
	// one bucket on the dashboard.
	for _, b := range []ports.NamedCount{
		{Name: "Delivered", Value: delivered},
		{Name: "In Transit", Value: inTransit},
		{Name: "Pending", Value: pending},
		{Name: "Picked Up", Value: pickedUp},
	} {
		if b.Value > 0 {
			report.StatusDistribution = append(report.StatusDistribution, b)
		}
	}

	return report
}

// rate formats part/total as a one-decimal percentage; the literal "0" for an
// empty set is part of the dashboard contract.
func rate(part, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}

// onTimeRate is the share of delivered shipments whose last update landed at
// or before the estimate.
func onTimeRate(shipments []*domain.Shipment) string {
	var delivered, onTime int
	for _, s := range shipments {
		if s.Status != domain.StatusDelivered {
			continue
		}
		delivered++
		if s.OnTime() {
			onTime++
		}
	}
	return rate(onTime, delivered)
}

// averageDeliveryDays is the mean of ceil(|estimated - created| in days) over
// delivered shipments, or "N/A" when none are delivered.
func averageDeliveryDays(shipments []*domain.Shipment) string {
	var delivered, totalDays int
	for _, s := range shipments {
		if s.Status != domain.StatusDelivered {
			continue
		}
		delivered++
		diff := s.EstimatedDelivery.Sub(s.CreatedAt)
		if diff < 0 {
			diff = -diff
		}
		totalDays += int(math.Ceil(diff.Hours() / 24))
	}
	if delivered == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", float64(totalDays)/float64(delivered))
}

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// weeklyTrend buckets shipments into the 7 calendar days of the current week.
// Bucket i's date is today shifted by (i - weekday) days with Sunday=0
// weekday numbering, the dashboard's established arithmetic. Boundaries are
// local midnight to local midnight.
func weeklyTrend(shipments []*domain.Shipment, now time.Time) []ports.WeeklyTrendPoint {
	weekday := int(now.Weekday())
	points := make([]ports.WeeklyTrendPoint, 0, 7)

	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-weekday)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 0, 1)

		point := ports.WeeklyTrendPoint{Day: weekdayLabels[i]}
		for _, s := range shipments {
			created := s.CreatedAt.In(now.Location())
			if created.Before(start) || !created.Before(end) {
				continue
			}
			point.Shipments++
			if s.Status == domain.StatusDelivered {
				point.Delivered++
			}
		}
		points = append(points, point)
	}
	return points
}

// categoryDistribution group-counts by the raw category string; label-casing
// is display-only.
func categoryDistribution(shipments []*domain.Shipment) []ports.NamedCount {
	counts := make(map[domain.PackageCategory]int)
	order := make([]domain.PackageCategory, 0)
	for _, s := range shipments {
		if _, seen := counts[s.Category]; !seen {
			order = append(order, s.Category)
		}
		counts[s.Category]++
	}

	out := make([]ports.NamedCount, 0, len(order))
	for _, c := range order {
		out = append(out, ports.NamedCount{Name: c.DisplayName(), Value: counts[c]})
	}
	return out
}
