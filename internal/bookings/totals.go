package bookings

import "math"

// Totals is the price breakdown shown at checkout and persisted on the
// booking. Total always includes the fee.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	Fee       float64 `json:"fee"`
	Total     float64 `json:"total"`
	SeatCount int     `json:"seat_count"`
	FeeRate   float64 `json:"fee_rate"`
}

// ComputeTotals sums the given seat prices and applies the convenience fee,
// rounded to the nearest rupee. Zero seats yields all-zero totals.
func ComputeTotals(prices []float64, feeRate float64) Totals {
	var subtotal float64
	for _, price := range prices {
		subtotal += price
	}

	fee := math.Round(subtotal * feeRate)
	return Totals{
		Subtotal:  subtotal,
		Fee:       fee,
		Total:     subtotal + fee,
		SeatCount: len(prices),
		FeeRate:   feeRate,
	}
}
