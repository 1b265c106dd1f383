package domain

import "time"

// CustomEventLabel marks an ad-hoc timeline entry appended by an admin. Such
// entries live outside the fixed 5-checkpoint model and are preserved
// verbatim in order, never merged into the canonical slots.
const CustomEventLabel = "Custom Update"

// TimelineEvent is a single checkpoint in a shipment's timeline.
type TimelineEvent struct {
	ID          string    `json:"id" bson:"id"`
	Status      string    `json:"status" bson:"status"`
	Location    string    `json:"location" bson:"location"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
	Description string    `json:"description" bson:"description"`
	Completed   bool      `json:"completed" bson:"completed"`
}

// checkpointLocations are the canonical locations attached to the fixed
// checkpoints at creation time, in rank order.
var checkpointLocations = [5]string{
	"Processing Center",
	"Local Hub",
	"Regional Distribution Center",
	"Delivery Station",
	"Destination",
}

// checkpointOffsets are provisional hour offsets from creation for each
// checkpoint's placeholder timestamp.
var checkpointOffsets = [5]int{0, 4, 24, 48, 72}

// NewTimeline builds the fixed 5-checkpoint timeline for a shipment whose
// current status is status. Checkpoints at or below the status rank are
// completed. Provisional timestamps are spaced by checkpointOffsets; callers
// creating a shipment align the final checkpoint to the estimated delivery.
func NewTimeline(status ShipmentStatus, createdAt time.Time, newID func() string) []TimelineEvent {
	rank := status.Rank()
	ordered := []ShipmentStatus{
		StatusPending, StatusPickedUp, StatusInTransit, StatusOutForDelivery, StatusDelivered,
	}

	events := make([]TimelineEvent, 0, len(ordered))
	for i, s := range ordered {
		events = append(events, TimelineEvent{
			ID:          newID(),
			Status:      s.CheckpointLabel(),
			Location:    checkpointLocations[i],
			Timestamp:   createdAt.Add(time.Duration(checkpointOffsets[i]) * time.Hour),
			Description: s.Description(),
			Completed:   rank >= i,
		})
	}
	return events
}

// AdvanceTimeline returns a copy of timeline with every canonical checkpoint
// of rank <= newStatus's rank completed. Entries completed by this call are
// stamped with now and given the canonical description; entries that were
// already complete keep their original timestamps. Checkpoints above the new
// rank, and Custom Update entries, are left untouched.
//
// Completing every rank up to the new one (rather than only the exact match)
// keeps the monotonic-completion invariant even when a transition skips
// intermediate statuses.
func AdvanceTimeline(timeline []TimelineEvent, newStatus ShipmentStatus, now time.Time) []TimelineEvent {
	newRank := newStatus.Rank()
	if newRank < 0 {
		out := make([]TimelineEvent, len(timeline))
		copy(out, timeline)
		return out
	}

	rankByLabel := make(map[string]ShipmentStatus, len(checkpointLabels))
	for s, label := range checkpointLabels {
		rankByLabel[label] = s
	}

	out := make([]TimelineEvent, len(timeline))
	copy(out, timeline)
	for i := range out {
		s, ok := rankByLabel[out[i].Status]
		if !ok {
			continue // ad-hoc entry
		}
		if s.Rank() > newRank || out[i].Completed {
			continue
		}
		out[i].Completed = true
		out[i].Timestamp = now
		out[i].Description = s.Description()
	}
	return out
}

// NewCustomEvent builds an ad-hoc timeline entry. It is always completed and
// stamped with now.
func NewCustomEvent(id, location, description string, now time.Time) TimelineEvent {
	if description == "" {
		description = "Manual status update by admin"
	}
	return TimelineEvent{
		ID:          id,
		Status:      CustomEventLabel,
		Location:    location,
		Timestamp:   now,
		Description: description,
		Completed:   true,
	}
}
