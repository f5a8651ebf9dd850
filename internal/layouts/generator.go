package layouts

import (
	"math/rand"
)

// CategoryBand assigns a run of consecutive rows to one seat category.
type CategoryBand struct {
	Category string
	Rows     int
}

// GeneratorConfig drives default layout generation for events that have no
// saved layout yet. Seed makes the unavailable-seat pattern reproducible so
// the same event always renders the same default map.
type GeneratorConfig struct {
	Venue               string
	Rows                int
	SeatsPerRow         int
	UnavailableFraction float64
	Seed                int64
	DefaultSeatPrice    float64
	Bands               []CategoryBand
}

// DefaultBands is the standard three tier split for a ten row house.
func DefaultBands() []CategoryBand {
	return []CategoryBand{
		{Category: "Premium", Rows: 3},
		{Category: "Gold", Rows: 4},
		{Category: "Silver", Rows: 3},
	}
}

// rowLabel converts a zero based row index to its label: A..Z, then AA, AB.
func rowLabel(index int) string {
	label := ""
	for {
		label = string(rune('A'+index%26)) + label
		index = index/26 - 1
		if index < 0 {
			return label
		}
	}
}

// PriceLookup resolves a category name to a seat price. Generators fall back
// to DefaultSeatPrice when the lookup fails or the category is unknown.
type PriceLookup func(category string) (float64, error)

// Generate builds a default seat layout: rows labeled A onward, seats
// numbered from 1, categories assigned in band order, and a seeded fraction
// of seats marked unavailable to mimic house holds.
func Generate(cfg GeneratorConfig, priceOf PriceLookup) *SeatLayout {
	if cfg.Rows < 1 {
		cfg.Rows = 1
	}
	if cfg.SeatsPerRow < 1 {
		cfg.SeatsPerRow = 1
	}
	bands := cfg.Bands
	if len(bands) == 0 {
		bands = DefaultBands()
	}

	categoryForRow := func(row int) string {
		remaining := row
		for _, band := range bands {
			if remaining < band.Rows {
				return band.Category
			}
			remaining -= band.Rows
		}
		// Rows past the last band inherit its category.
		return bands[len(bands)-1].Category
	}

	prices := make(map[string]float64, len(bands))
	for _, band := range bands {
		price := cfg.DefaultSeatPrice
		if priceOf != nil {
			if p, err := priceOf(band.Category); err == nil {
				price = p
			}
		}
		prices[band.Category] = price
	}

	layout := &SeatLayout{
		Venue: cfg.Venue,
		Seats: make([]Seat, 0, cfg.Rows*cfg.SeatsPerRow),
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for row := 0; row < cfg.Rows; row++ {
		label := rowLabel(row)
		category := categoryForRow(row)
		price, ok := prices[category]
		if !ok {
			price = cfg.DefaultSeatPrice
		}
		for number := 1; number <= cfg.SeatsPerRow; number++ {
			status := SeatAvailable
			if rng.Float64() < cfg.UnavailableFraction {
				status = SeatUnavailable
			}
			layout.Seats = append(layout.Seats, Seat{
				ID:       SeatID(label, number),
				Row:      label,
				Number:   number,
				Status:   status,
				Category: category,
				Price:    price,
			})
		}
	}

	return layout
}
