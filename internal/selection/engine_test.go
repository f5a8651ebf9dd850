package selection

import (
	"testing"

	"stagepass/internal/layouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout() *layouts.SeatLayout {
	return &layouts.SeatLayout{
		Venue: "Test Hall",
		Seats: []layouts.Seat{
			{ID: "A1", Row: "A", Number: 1, Status: layouts.SeatAvailable, Category: "Premium", Price: 2000},
			{ID: "A2", Row: "A", Number: 2, Status: layouts.SeatAvailable, Category: "Premium", Price: 2000},
			{ID: "A3", Row: "A", Number: 3, Status: layouts.SeatBooked, Category: "Premium", Price: 2000},
			{ID: "A4", Row: "A", Number: 4, Status: layouts.SeatUnavailable, Category: "Premium", Price: 2000},
			{ID: "B1", Row: "B", Number: 1, Status: layouts.SeatAvailable, Category: "Gold", Price: 1000},
			{ID: "B2", Row: "B", Number: 2, Status: layouts.SeatAvailable, Category: "Gold", Price: 1000},
		},
	}
}

func TestToggleSelectsAndDeselects(t *testing.T) {
	engine := New(testLayout(), WithActiveCategory("Premium"), WithMaxSeats(10))

	require.NoError(t, engine.Toggle("A1"))
	assert.Equal(t, []string{"A1"}, engine.Selected())
	assert.Equal(t, layouts.SeatSelected, engine.DeriveStatus("A1"))

	require.NoError(t, engine.Toggle("A1"))
	assert.Empty(t, engine.Selected())
	assert.Equal(t, layouts.SeatAvailable, engine.DeriveStatus("A1"))
}

func TestToggleBookedSeatIsNoOp(t *testing.T) {
	engine := New(testLayout(), WithActiveCategory("Premium"))

	require.NoError(t, engine.Toggle("A3"))
	assert.Empty(t, engine.Selected())
	assert.Equal(t, layouts.SeatBooked, engine.DeriveStatus("A3"))
}

func TestToggleUnavailableSeatIsNoOp(t *testing.T) {
	engine := New(testLayout(), WithActiveCategory("Premium"))

	require.NoError(t, engine.Toggle("A4"))
	assert.Empty(t, engine.Selected())
}

func TestToggleUnknownSeat(t *testing.T) {
	engine := New(testLayout())

	assert.ErrorIs(t, engine.Toggle("Z99"), ErrUnknownSeat)
}

func TestToggleRejectsOtherCategory(t *testing.T) {
	engine := New(testLayout(), WithActiveCategory("Premium"))

	assert.ErrorIs(t, engine.Toggle("B1"), ErrCategoryMismatch)
	assert.Empty(t, engine.Selected())
}

func TestToggleEnforcesSeatLimit(t *testing.T) {
	engine := New(testLayout(), WithActiveCategory("Premium"), WithMaxSeats(1))

	require.NoError(t, engine.Toggle("A1"))
	assert.ErrorIs(t, engine.Toggle("A2"), ErrSeatLimitExceeded)

	// Deselect frees a slot
	require.NoError(t, engine.Toggle("A1"))
	require.NoError(t, engine.Toggle("A2"))
	assert.Equal(t, []string{"A2"}, engine.Selected())
}

func TestToggleRejectsClosedCategory(t *testing.T) {
	engine := New(testLayout(),
		WithActiveCategory("Premium"),
		WithCategoryGate(func(category string) bool { return false }),
	)

	assert.ErrorIs(t, engine.Toggle("A1"), ErrCategoryClosed)
}

func TestDeselectAllowedAfterCategoryCloses(t *testing.T) {
	open := true
	engine := New(testLayout(),
		WithActiveCategory("Premium"),
		WithCategoryGate(func(category string) bool { return open }),
	)

	require.NoError(t, engine.Toggle("A1"))
	open = false

	require.NoError(t, engine.Toggle("A1"))
	assert.Empty(t, engine.Selected())
}

func TestDeriveStatusMasksOtherCategories(t *testing.T) {
	engine := New(testLayout(), WithActiveCategory("Premium"))

	assert.Equal(t, layouts.SeatUnavailable, engine.DeriveStatus("B1"))
}

func TestAdminModeIgnoresCategoryRestrictions(t *testing.T) {
	engine := New(testLayout(),
		WithActiveCategory("Premium"),
		WithAdminMode(),
		WithCategoryGate(func(category string) bool { return false }),
	)

	require.NoError(t, engine.Toggle("B1"))
	assert.Equal(t, []string{"B1"}, engine.Selected())
	assert.Equal(t, layouts.SeatAvailable, engine.DeriveStatus("B2"))
}

func TestWithSelectedDropsStaleSeats(t *testing.T) {
	// A3 was booked by someone else since the selection was saved.
	engine := New(testLayout(),
		WithActiveCategory("Premium"),
		WithSelected([]string{"A1", "A3", "GONE"}),
	)

	assert.Equal(t, []string{"A1"}, engine.Selected())
}

func TestClear(t *testing.T) {
	engine := New(testLayout(), WithActiveCategory("Premium"))
	require.NoError(t, engine.Toggle("A1"))

	engine.Clear()
	assert.Zero(t, engine.Count())
}
