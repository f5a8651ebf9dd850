package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editorLayout() *SeatLayout {
	return &SeatLayout{
		Venue: "Edit Hall",
		Seats: []Seat{
			{ID: "A1", Row: "A", Number: 1, Status: SeatAvailable, Category: "Premium", Price: 2000},
			{ID: "A2", Row: "A", Number: 2, Status: SeatBooked, Category: "Premium", Price: 2000},
			{ID: "B1", Row: "B", Number: 1, Status: SeatAvailable, Category: "Gold", Price: 1000},
			{ID: "B2", Row: "B", Number: 2, Status: SeatUnavailable, Category: "Gold", Price: 1000},
		},
	}
}

func TestToggleSeatAvailability(t *testing.T) {
	editor := NewEditor(editorLayout())

	seat, err := editor.ToggleSeatAvailability("A1")
	require.NoError(t, err)
	assert.Equal(t, SeatUnavailable, seat.Status)

	seat, err = editor.ToggleSeatAvailability("A1")
	require.NoError(t, err)
	assert.Equal(t, SeatAvailable, seat.Status)
}

func TestToggleSeatAvailabilityRejectsBooked(t *testing.T) {
	editor := NewEditor(editorLayout())

	_, err := editor.ToggleSeatAvailability("A2")
	assert.ErrorIs(t, err, ErrSeatBooked)
}

func TestToggleSeatAvailabilityUnknownSeat(t *testing.T) {
	editor := NewEditor(editorLayout())

	_, err := editor.ToggleSeatAvailability("Z9")
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestSetRowCategoryKeepsStatuses(t *testing.T) {
	layout := editorLayout()
	editor := NewEditor(layout)

	require.NoError(t, editor.SetRowCategory("A", "Silver", 500))

	a1, _ := layout.SeatByID("A1")
	a2, _ := layout.SeatByID("A2")
	assert.Equal(t, "Silver", a1.Category)
	assert.Equal(t, 500.0, a1.Price)
	assert.Equal(t, SeatBooked, a2.Status)
	assert.Equal(t, "Silver", a2.Category)
}

func TestSetRowCategoryUnknownRow(t *testing.T) {
	editor := NewEditor(editorLayout())

	assert.ErrorIs(t, editor.SetRowCategory("Z", "Silver", 500), ErrRowNotFound)
}

func TestAddRow(t *testing.T) {
	layout := editorLayout()
	editor := NewEditor(layout)

	require.NoError(t, editor.AddRow("C", 3, "Silver", 500))
	require.NoError(t, layout.Validate())

	seats := layout.SeatsInRow("C")
	require.Len(t, seats, 3)
	assert.Equal(t, "C1", seats[0].ID)
	assert.Equal(t, SeatAvailable, seats[0].Status)
	assert.Equal(t, "Silver", seats[0].Category)
}

func TestAddRowDuplicate(t *testing.T) {
	editor := NewEditor(editorLayout())

	assert.ErrorIs(t, editor.AddRow("A", 3, "Silver", 500), ErrRowAlreadyExists)
}

func TestRemoveRow(t *testing.T) {
	layout := editorLayout()
	editor := NewEditor(layout)

	require.NoError(t, editor.RemoveRow("B"))
	assert.Equal(t, []string{"A"}, layout.Rows())
}

func TestRemoveRowWithBookedSeats(t *testing.T) {
	editor := NewEditor(editorLayout())

	assert.ErrorIs(t, editor.RemoveRow("A"), ErrRowHasBookedSeats)
}

func TestRemoveLastRow(t *testing.T) {
	layout := &SeatLayout{
		Seats: []Seat{{ID: "A1", Row: "A", Number: 1, Status: SeatAvailable}},
	}
	editor := NewEditor(layout)

	assert.ErrorIs(t, editor.RemoveRow("A"), ErrCannotRemoveLastRow)
}

func TestRemoveUnknownRow(t *testing.T) {
	editor := NewEditor(editorLayout())

	assert.ErrorIs(t, editor.RemoveRow("Z"), ErrRowNotFound)
}

func TestAttachReferenceImage(t *testing.T) {
	layout := editorLayout()
	editor := NewEditor(layout)

	editor.AttachReferenceImage("https://cdn.example.com/hall.png")
	assert.Equal(t, "https://cdn.example.com/hall.png", layout.ImageURL)
}

func TestLayoutSortsRowsAndNumbers(t *testing.T) {
	layout := &SeatLayout{
		Seats: []Seat{
			{ID: "B2", Row: "B", Number: 2, Status: SeatAvailable},
			{ID: "A10", Row: "A", Number: 10, Status: SeatAvailable},
			{ID: "A2", Row: "A", Number: 2, Status: SeatAvailable},
			{ID: "AA1", Row: "AA", Number: 1, Status: SeatAvailable},
		},
	}

	sorted := NewEditor(layout).Layout()
	ids := make([]string, 0, len(sorted.Seats))
	for _, seat := range sorted.Seats {
		ids = append(ids, seat.ID)
	}
	assert.Equal(t, []string{"A2", "A10", "B2", "AA1"}, ids)
}
