package payments

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// UPIInstructions is everything a buyer needs to pay: the deeplink for UPI
// apps, the raw VPA for manual entry, and the exact amount due.
type UPIInstructions struct {
	UPIID      string  `json:"upi_id"`
	PayeeName  string  `json:"payee_name"`
	Amount     float64 `json:"amount"`
	BookingRef string  `json:"booking_ref"`
	Deeplink   string  `json:"deeplink"`
}

// BuildDeeplink renders the standard upi://pay URI for the given payee and
// amount, tagging the transaction note with the booking reference.
func BuildDeeplink(upiID, payeeName string, amount float64, bookingRef string) string {
	params := url.Values{}
	params.Set("pa", upiID)
	params.Set("pn", payeeName)
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")
	params.Set("tn", bookingRef)
	return "upi://pay?" + params.Encode()
}

// BuildQRCode encodes the deeplink as a 256px PNG QR code.
func BuildQRCode(deeplink string) ([]byte, error) {
	png, err := qrcode.Encode(deeplink, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode UPI QR code: %w", err)
	}
	return png, nil
}
