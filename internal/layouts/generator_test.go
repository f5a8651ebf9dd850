package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultLayout(t *testing.T) {
	layout := Generate(GeneratorConfig{
		Venue:            "Main Hall",
		Rows:             10,
		SeatsPerRow:      20,
		Seed:             1,
		DefaultSeatPrice: 500,
	}, nil)

	require.NoError(t, layout.Validate())
	assert.Equal(t, "Main Hall", layout.Venue)
	assert.Len(t, layout.Seats, 200)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}, layout.Rows())

	seat, ok := layout.SeatByID("C14")
	require.True(t, ok)
	assert.Equal(t, "C", seat.Row)
	assert.Equal(t, 14, seat.Number)
}

func TestGenerateCategoryBands(t *testing.T) {
	layout := Generate(GeneratorConfig{
		Rows:        10,
		SeatsPerRow: 4,
	}, func(category string) (float64, error) {
		switch category {
		case "Premium":
			return 2000, nil
		case "Gold":
			return 1000, nil
		}
		return 500, nil
	})

	// Premium 3 rows, Gold 4 rows, Silver 3 rows
	for _, tc := range []struct {
		row      string
		category string
		price    float64
	}{
		{"A", "Premium", 2000},
		{"C", "Premium", 2000},
		{"D", "Gold", 1000},
		{"G", "Gold", 1000},
		{"H", "Silver", 500},
		{"J", "Silver", 500},
	} {
		seat, ok := layout.SeatByID(tc.row + "1")
		require.True(t, ok, tc.row)
		assert.Equal(t, tc.category, seat.Category, tc.row)
		assert.Equal(t, tc.price, seat.Price, tc.row)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := GeneratorConfig{Rows: 5, SeatsPerRow: 10, UnavailableFraction: 0.3, Seed: 42}

	first := Generate(cfg, nil)
	second := Generate(cfg, nil)

	assert.Equal(t, first.Seats, second.Seats)
}

func TestGenerateUnavailableFraction(t *testing.T) {
	layout := Generate(GeneratorConfig{Rows: 10, SeatsPerRow: 20, UnavailableFraction: 0.10, Seed: 1}, nil)

	unavailable := 0
	for _, seat := range layout.Seats {
		if seat.Status == SeatUnavailable {
			unavailable++
		}
	}
	// Roughly a tenth of 200 seats, never zero and never a flood.
	assert.Greater(t, unavailable, 5)
	assert.Less(t, unavailable, 50)
}

func TestGenerateZeroFractionAllAvailable(t *testing.T) {
	layout := Generate(GeneratorConfig{Rows: 2, SeatsPerRow: 5, UnavailableFraction: 0, Seed: 1}, nil)

	for _, seat := range layout.Seats {
		assert.Equal(t, SeatAvailable, seat.Status)
	}
}

func TestRowLabelWrapsPastZ(t *testing.T) {
	assert.Equal(t, "A", rowLabel(0))
	assert.Equal(t, "Z", rowLabel(25))
	assert.Equal(t, "AA", rowLabel(26))
	assert.Equal(t, "AB", rowLabel(27))
}
