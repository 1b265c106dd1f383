// Package export renders shipments and tickets into the download formats the
// admin console serves: CSV tables, plain-text receipts and QR code images.
package export

import (
	"fmt"
	"strings"

	"github.com/movemate/logistics-api/internal/core/domain"
)

const dateLayout = "2006-01-02"

var shipmentCSVHeader = []string{
	"Tracking ID",
	"Sender",
	"Receiver",
	"Pickup",
	"Delivery",
	"Status",
	"Current Location",
	"Estimated Delivery",
	"Weight",
	"Category",
	"Created Date",
}

var ticketCSVHeader = []string{
	"Ticket ID",
	"Name",
	"Email",
	"Subject",
	"Category",
	"Status",
	"Created Date",
	"Last Updated",
	"Response Count",
}

// ShipmentsCSV renders the shipment table as CSV. Every data cell is quoted,
// matching the download format the console always produced.
func ShipmentsCSV(shipments []*domain.Shipment) []byte {
	rows := make([][]string, 0, len(shipments))
	for _, s := range shipments {
		rows = append(rows, []string{
			s.TrackingID,
			s.SenderName,
			s.ReceiverName,
			s.PickupLocation,
			s.DeliveryLocation,
			string(s.Status),
			s.CurrentLocation,
			s.EstimatedDelivery.Format(dateLayout),
			fmt.Sprintf("%g", s.WeightKg),
			string(s.Category),
			s.CreatedAt.Format(dateLayout),
		})
	}
	return renderCSV(shipmentCSVHeader, rows)
}

// TicketsCSV renders the ticket table as CSV.
func TicketsCSV(tickets []*domain.Ticket) []byte {
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{
			t.TicketID,
			t.Name,
			t.Email,
			t.Subject,
			t.Category.DisplayName(),
			strings.ReplaceAll(string(t.Status), "_", " "),
			t.CreatedAt.Format(dateLayout),
			t.UpdatedAt.Format(dateLayout),
			fmt.Sprintf("%d", len(t.Responses)),
		})
	}
	return renderCSV(ticketCSVHeader, rows)
}

// renderCSV joins a header row and quoted data rows. The header is emitted
// unquoted and every data cell is quoted, preserving the exact byte layout
// of the historical downloads.
func renderCSV(header []string, rows [][]string) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return []byte(b.String())
}
