package export

import (
	"fmt"
	"strings"

	"github.com/movemate/logistics-api/internal/core/domain"
)

const (
	receiptDateLayout     = "January 2, 2006"
	receiptLongDateLayout = "Monday, January 2, 2006"
)

// Receipt renders the plain-text shipment receipt offered for download after
// a shipment is created. trackingBaseURL is the public site prefix, e.g.
// "movemate.com".
func Receipt(s *domain.Shipment, trackingBaseURL string) []byte {
	var b strings.Builder

	b.WriteString("MOVEMATE LOGISTICEXPRESS\n")
	b.WriteString("========================\n")
	b.WriteString("SHIPMENT RECEIPT\n\n")

	fmt.Fprintf(&b, "Tracking ID: %s\n", s.TrackingID)
	fmt.Fprintf(&b, "Date: %s\n\n", s.CreatedAt.Format(receiptDateLayout))

	b.WriteString("SENDER DETAILS\n")
	b.WriteString("--------------\n")
	fmt.Fprintf(&b, "Name: %s\n", s.SenderName)
	fmt.Fprintf(&b, "Phone: %s\n", s.SenderPhone)
	fmt.Fprintf(&b, "Pickup: %s\n\n", s.PickupLocation)

	b.WriteString("RECEIVER DETAILS\n")
	b.WriteString("----------------\n")
	fmt.Fprintf(&b, "Name: %s\n", s.ReceiverName)
	fmt.Fprintf(&b, "Phone: %s\n", s.ReceiverPhone)
	fmt.Fprintf(&b, "Delivery: %s\n\n", s.DeliveryLocation)

	b.WriteString("PACKAGE DETAILS\n")
	b.WriteString("---------------\n")
	fmt.Fprintf(&b, "Description: %s\n", s.PackageDescription)
	fmt.Fprintf(&b, "Weight: %g kg\n", s.WeightKg)
	fmt.Fprintf(&b, "Category: %s\n\n", s.Category)

	b.WriteString("ESTIMATED DELIVERY\n")
	b.WriteString("------------------\n")
	fmt.Fprintf(&b, "%s\n\n", s.EstimatedDelivery.Format(receiptLongDateLayout))

	fmt.Fprintf(&b, "Track your shipment at: %s\n\n", TrackingURL(trackingBaseURL, s.TrackingID))
	b.WriteString("Thank you for choosing Movemate LogisticExpress!\n")

	return []byte(b.String())
}

// ReceiptFilename is the suggested download name for a shipment receipt.
func ReceiptFilename(trackingID string) string {
	return fmt.Sprintf("movemate-receipt-%s.txt", trackingID)
}

// TrackingURL builds the public tracking page link embedded in receipts and
// QR codes.
func TrackingURL(baseURL, trackingID string) string {
	return fmt.Sprintf("%s/track?id=%s", strings.TrimRight(baseURL, "/"), trackingID)
}
