package ports

import "context"

// NamedCount is a label/value pair for distribution charts.
type NamedCount struct {
	Name  string
	Value int
}

// WeeklyTrendPoint is one calendar-day bucket of the current week.
type WeeklyTrendPoint struct {
	Day       string // Mon..Sun
	Shipments int    // created that day
	Delivered int    // created that day and currently delivered
}

// AnalyticsReport is the full dashboard payload, derived in one pass from the
// shipment table snapshot. Rates are pre-formatted strings with one decimal;
// the literal "0" and "N/A" sentinels match the dashboard contract.
type AnalyticsReport struct {
	Total     int
	Delivered int
	InTransit int // in_transit plus out_for_delivery
	Pending   int
	PickedUp  int

	DeliveryRate    string
	OnTimeRate      string
	AvgDeliveryDays string

	StatusDistribution   []NamedCount
	WeeklyTrend          []WeeklyTrendPoint
	CategoryDistribution []NamedCount
}

// AnalyticsService recomputes the dashboard aggregates on demand. There is no
// incremental maintenance; every call derives from a fresh snapshot.
type AnalyticsService interface {
	Report(ctx context.Context) (*AnalyticsReport, error)
}
