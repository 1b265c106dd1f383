package export

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// TrackingQR renders a PNG QR code pointing at the public tracking page for
// the given shipment.
func TrackingQR(baseURL, trackingID string) ([]byte, error) {
	png, err := qrcode.Encode(TrackingURL(baseURL, trackingID), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode tracking qr: %w", err)
	}
	return png, nil
}
