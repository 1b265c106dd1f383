// Package metrics defines all custom Prometheus metrics for the Movemate
// logistics API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry via promauto
// at package init; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "movemate"

// ── Shipment metrics ──────────────────────────────────────────────────────────

// ShipmentsCreatedTotal counts shipments created through the request-tracking
// flow, by package category.
var ShipmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created, by package category.",
	},
	[]string{"category"},
)

// ShipmentStatusTransitionsTotal counts applied status changes, by the status
// entered.
var ShipmentStatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipment_status_transitions_total",
		Help:      "Total number of shipment status transitions, by new status.",
	},
	[]string{"status"},
)

// ── Ticket metrics ────────────────────────────────────────────────────────────

// TicketsCreatedTotal counts support tickets opened, by category.
var TicketsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of support tickets created, by category.",
	},
	[]string{"category"},
)

// TicketRepliesTotal counts ticket responses appended.
// Label:
//   - author: "admin" or "customer"
var TicketRepliesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_replies_total",
		Help:      "Total number of ticket responses appended, by author.",
	},
	[]string{"author"},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatMessagesTotal counts chat messages appended.
// Label:
//   - author: "visitor", "agent" or "bot"
var ChatMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Total number of chat messages appended, by author.",
	},
	[]string{"author"},
)

// ChatRemindersSentTotal counts auto-reply reminders appended to unanswered
// sessions.
var ChatRemindersSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_reminders_sent_total",
		Help:      "Total number of unanswered-conversation auto-replies sent.",
	},
)

// ChatReminderTimers tracks the number of currently armed reminder timers.
var ChatReminderTimers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "chat_reminder_timers",
		Help:      "Number of chat sessions with an armed auto-reply timer.",
	},
)
