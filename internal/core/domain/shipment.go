package domain

import (
	"errors"
	"strings"
	"time"
)

// ShipmentStatus represents the lifecycle state of a shipment.
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "pending"
	StatusPickedUp       ShipmentStatus = "picked_up"
	StatusInTransit      ShipmentStatus = "in_transit"
	StatusOutForDelivery ShipmentStatus = "out_for_delivery"
	StatusDelivered      ShipmentStatus = "delivered"

	// StatusCancelled never results from the lifecycle; it exists for rows
	// imported from legacy data and is accepted by list filters only.
	StatusCancelled ShipmentStatus = "cancelled"
)

// statusRanks is the total order over lifecycle statuses. cancelled is
// deliberately absent: it has no place on the timeline.
var statusRanks = map[ShipmentStatus]int{
	StatusPending:        0,
	StatusPickedUp:       1,
	StatusInTransit:      2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrInvalidStatus = errors.New("invalid shipment status")
var ErrInvalidTrackingID = errors.New("invalid tracking id")
var ErrForbidden = errors.New("access forbidden")

// Rank returns the checkpoint rank (0..4) of a lifecycle status, or -1 for
// any value outside the linear progression.
func (s ShipmentStatus) Rank() int {
	if r, ok := statusRanks[s]; ok {
		return r
	}
	return -1
}

// Valid reports whether s is a lifecycle status an update may set.
func (s ShipmentStatus) Valid() bool {
	_, ok := statusRanks[s]
	return ok
}

// FilterValue reports whether s is acceptable as a list-filter value. This is
// the one place cancelled is honored.
func (s ShipmentStatus) FilterValue() bool {
	return s.Valid() || s == StatusCancelled
}

// checkpointLabels maps each status to its timeline entry label. Timeline
// entries are matched to statuses through these labels, so they must stay in
// sync with NewTimeline.
var checkpointLabels = map[ShipmentStatus]string{
	StatusPending:        "Order Received",
	StatusPickedUp:       "Picked Up",
	StatusInTransit:      "In Transit",
	StatusOutForDelivery: "Out for Delivery",
	StatusDelivered:      "Delivered",
}

// CheckpointLabel returns the timeline label for a lifecycle status.
func (s ShipmentStatus) CheckpointLabel() string {
	return checkpointLabels[s]
}

var statusDescriptions = map[ShipmentStatus]string{
	StatusPending:        "Your shipment request has been received and is being processed.",
	StatusPickedUp:       "Package has been picked up from the sender.",
	StatusInTransit:      "Your package is on its way to the destination.",
	StatusOutForDelivery: "Package is out for delivery to the recipient.",
	StatusDelivered:      "Package has been successfully delivered.",
}

// Description returns the fixed customer-facing description for a status.
func (s ShipmentStatus) Description() string {
	if d, ok := statusDescriptions[s]; ok {
		return d
	}
	return "Status updated."
}

// progressPercents drives the tracking-card progress bar. It is intentionally
// non-linear and intentionally different from routeProgressPercents; the two
// feed different UI affordances and must not be unified.
var progressPercents = map[ShipmentStatus]int{
	StatusPending:        10,
	StatusPickedUp:       25,
	StatusInTransit:      50,
	StatusOutForDelivery: 75,
	StatusDelivered:      100,
}

// routeProgressPercents drives the route-map truck position.
var routeProgressPercents = map[ShipmentStatus]int{
	StatusPending:        5,
	StatusPickedUp:       20,
	StatusInTransit:      50,
	StatusOutForDelivery: 80,
	StatusDelivered:      100,
}

// ProgressPercent returns the tracking-card progress value for a status.
func (s ShipmentStatus) ProgressPercent() int {
	return progressPercents[s]
}

// RouteProgressPercent returns the route-map progress value for a status.
func (s ShipmentStatus) RouteProgressPercent() int {
	return routeProgressPercents[s]
}

// PackageCategory is the declared contents class of a shipment.
type PackageCategory string

const (
	CategoryDocuments   PackageCategory = "documents"
	CategoryElectronics PackageCategory = "electronics"
	CategoryClothing    PackageCategory = "clothing"
	CategoryFood        PackageCategory = "food"
	CategoryFragile     PackageCategory = "fragile"
	CategoryOther       PackageCategory = "other"
)

var validCategories = map[PackageCategory]struct{}{
	CategoryDocuments:   {},
	CategoryElectronics: {},
	CategoryClothing:    {},
	CategoryFood:        {},
	CategoryFragile:     {},
	CategoryOther:       {},
}

// Valid reports whether c is a known package category.
func (c PackageCategory) Valid() bool {
	_, ok := validCategories[c]
	return ok
}

// DisplayName title-cases a raw category string for presentation, turning
// underscores into spaces. The stored value is never modified.
func (c PackageCategory) DisplayName() string {
	s := strings.ReplaceAll(string(c), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Shipment is the core aggregate root.
type Shipment struct {
	ID                 string          `json:"id" bson:"_id,omitempty"`
	TrackingID         string          `json:"tracking_id" bson:"tracking_id"`
	SenderName         string          `json:"sender_name" bson:"sender_name"`
	SenderPhone        string          `json:"sender_phone" bson:"sender_phone"`
	ReceiverName       string          `json:"receiver_name" bson:"receiver_name"`
	ReceiverPhone      string          `json:"receiver_phone" bson:"receiver_phone"`
	PickupLocation     string          `json:"pickup_location" bson:"pickup_location"`
	DeliveryLocation   string          `json:"delivery_location" bson:"delivery_location"`
	CurrentLocation    string          `json:"current_location" bson:"current_location"`
	PackageDescription string          `json:"package_description" bson:"package_description"`
	WeightKg           float64         `json:"weight" bson:"weight"`
	Category           PackageCategory `json:"category" bson:"category"`
	Status             ShipmentStatus  `json:"status" bson:"status"`
	EstimatedDelivery  time.Time       `json:"estimated_delivery" bson:"estimated_delivery"`
	CreatedAt          time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" bson:"updated_at"`
	Timeline           []TimelineEvent `json:"timeline" bson:"timeline"`
}

// OnTime reports whether a delivered shipment arrived within its estimate.
// Equal timestamps count as on time.
func (s *Shipment) OnTime() bool {
	return !s.UpdatedAt.After(s.EstimatedDelivery)
}

// SplitLocation coarsely parses a free-text location into a head part and the
// remainder, splitting on the first comma. Used only for display.
func SplitLocation(location string) (head, rest string) {
	head, rest, found := strings.Cut(location, ",")
	if !found {
		return strings.TrimSpace(location), ""
	}
	return strings.TrimSpace(head), strings.TrimSpace(rest)
}
