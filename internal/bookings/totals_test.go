package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals([]float64{2000, 2000, 2000}, 0.03)

	assert.Equal(t, 6000.0, totals.Subtotal)
	assert.Equal(t, 180.0, totals.Fee)
	assert.Equal(t, 6180.0, totals.Total)
	assert.Equal(t, 3, totals.SeatCount)
	assert.Equal(t, 0.03, totals.FeeRate)
}

func TestComputeTotalsRoundsFee(t *testing.T) {
	// 3% of 1111 is 33.33, rounds down to 33
	totals := ComputeTotals([]float64{1111}, 0.03)
	assert.Equal(t, 33.0, totals.Fee)
	assert.Equal(t, 1144.0, totals.Total)

	// 3% of 1850 is 55.5, rounds up to 56
	totals = ComputeTotals([]float64{1850}, 0.03)
	assert.Equal(t, 56.0, totals.Fee)
	assert.Equal(t, 1906.0, totals.Total)
}

func TestComputeTotalsMixedPrices(t *testing.T) {
	totals := ComputeTotals([]float64{2000, 1000, 500}, 0.03)

	assert.Equal(t, 3500.0, totals.Subtotal)
	assert.Equal(t, 105.0, totals.Fee)
	assert.Equal(t, 3605.0, totals.Total)
}

func TestComputeTotalsZeroSeats(t *testing.T) {
	totals := ComputeTotals(nil, 0.03)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Fee)
	assert.Zero(t, totals.Total)
	assert.Zero(t, totals.SeatCount)
}
