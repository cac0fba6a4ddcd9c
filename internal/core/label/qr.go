package label

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// defaultSize is a good fit for 2-inch thermal label printers.
const defaultSize = 256

// TrackingQR renders a PNG QR code encoding the tracking number, for
// printing on package labels. size <= 0 falls back to the default.
func TrackingQR(trackingNumber string, size int) ([]byte, error) {
	if trackingNumber == "" {
		return nil, fmt.Errorf("tracking number is empty")
	}
	if size <= 0 {
		size = defaultSize
	}

	png, err := qrcode.Encode(trackingNumber, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR label: %w", err)
	}
	return png, nil
}
