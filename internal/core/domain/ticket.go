package domain

import (
	"errors"
	"time"
)

// TicketStatus represents the support ticket workflow state.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
)

var ErrTicketNotFound = errors.New("ticket not found")

// Valid reports whether s is a known ticket status. Status transitions are
// otherwise free-form: an admin can set any valid value at any time. The
// only enforced rule is the open → in_progress auto-advance on first admin
// reply, applied by the service layer.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved:
		return true
	}
	return false
}

// TicketCategory is the free-form support topic class.
type TicketCategory string

const (
	TicketGeneral  TicketCategory = "general"
	TicketTracking TicketCategory = "tracking"
	TicketBilling  TicketCategory = "billing"
	TicketDamage   TicketCategory = "damage"
	TicketDelay    TicketCategory = "delay"
	TicketFeedback TicketCategory = "feedback"
)

// DisplayName returns the label-cased category used on exports and the
// console UI; raw values are stored as-is.
func (c TicketCategory) DisplayName() string {
	switch c {
	case TicketGeneral:
		return "General Inquiry"
	case TicketTracking:
		return "Tracking"
	case TicketBilling:
		return "Billing"
	case TicketDamage:
		return "Damage Claim"
	case TicketDelay:
		return "Delivery Delay"
	case TicketFeedback:
		return "Feedback"
	}
	return string(c)
}

// TicketResponse is a single append-only reply on a ticket.
type TicketResponse struct {
	ID        string    `json:"id" bson:"id"`
	Message   string    `json:"message" bson:"message"`
	IsAdmin   bool      `json:"is_admin" bson:"is_admin"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Ticket is a customer support request.
type Ticket struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	TicketID  string           `json:"ticket_id" bson:"ticket_id"`
	Name      string           `json:"name" bson:"name"`
	Email     string           `json:"email" bson:"email"`
	Subject   string           `json:"subject" bson:"subject"`
	Message   string           `json:"message" bson:"message"`
	Category  TicketCategory   `json:"category" bson:"category"`
	Status    TicketStatus     `json:"status" bson:"status"`
	Responses []TicketResponse `json:"responses" bson:"responses"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}
