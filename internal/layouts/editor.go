package layouts

import (
	"errors"
	"sort"
)

var (
	ErrSeatNotFound         = errors.New("seat not found in layout")
	ErrRowNotFound          = errors.New("row not found in layout")
	ErrCannotRemoveLastRow  = errors.New("cannot remove the last remaining row")
	ErrSeatBooked           = errors.New("booked seats cannot be toggled")
	ErrRowHasBookedSeats    = errors.New("row with booked seats cannot be removed")
	ErrRowAlreadyExists     = errors.New("row already exists in layout")
	ErrInvalidRowDefinition = errors.New("row needs at least one seat")
)

// Editor applies admin mutations to an in-memory layout document. Edits are
// not persisted until the caller saves the resulting layout wholesale.
type Editor struct {
	layout *SeatLayout
}

// NewEditor wraps a layout for mutation. The layout is modified in place.
func NewEditor(layout *SeatLayout) *Editor {
	return &Editor{layout: layout}
}

// Layout returns the underlying document with rows and seat numbers sorted.
func (e *Editor) Layout() *SeatLayout {
	sort.SliceStable(e.layout.Seats, func(i, j int) bool {
		a, b := e.layout.Seats[i], e.layout.Seats[j]
		if a.Row != b.Row {
			if len(a.Row) != len(b.Row) {
				return len(a.Row) < len(b.Row)
			}
			return a.Row < b.Row
		}
		return a.Number < b.Number
	})
	return e.layout
}

// ToggleSeatAvailability flips a seat between available and unavailable.
// Booked seats are owned by the booking flow and cannot be toggled.
func (e *Editor) ToggleSeatAvailability(seatID string) (*Seat, error) {
	seat, ok := e.layout.SeatByID(seatID)
	if !ok {
		return nil, ErrSeatNotFound
	}

	switch seat.Status {
	case SeatAvailable:
		seat.Status = SeatUnavailable
	case SeatUnavailable:
		seat.Status = SeatAvailable
	default:
		return nil, ErrSeatBooked
	}
	return seat, nil
}

// SetRowCategory reassigns every seat in a row to the given category and
// price. Seat statuses are preserved, including booked.
func (e *Editor) SetRowCategory(row, category string, price float64) error {
	found := false
	for i := range e.layout.Seats {
		if e.layout.Seats[i].Row == row {
			e.layout.Seats[i].Category = category
			e.layout.Seats[i].Price = price
			found = true
		}
	}
	if !found {
		return ErrRowNotFound
	}
	return nil
}

// AddRow appends a new row of available seats. The row label must not
// collide with an existing row.
func (e *Editor) AddRow(row string, seats int, category string, price float64) error {
	if seats < 1 {
		return ErrInvalidRowDefinition
	}
	for _, seat := range e.layout.Seats {
		if seat.Row == row {
			return ErrRowAlreadyExists
		}
	}

	for number := 1; number <= seats; number++ {
		e.layout.Seats = append(e.layout.Seats, Seat{
			ID:       SeatID(row, number),
			Row:      row,
			Number:   number,
			Status:   SeatAvailable,
			Category: category,
			Price:    price,
		})
	}
	return nil
}

// RemoveRow deletes an entire row. The last remaining row cannot be removed,
// and rows holding booked seats are protected.
func (e *Editor) RemoveRow(row string) error {
	rows := e.layout.Rows()
	found := false
	for _, r := range rows {
		if r == row {
			found = true
			break
		}
	}
	if !found {
		return ErrRowNotFound
	}
	if len(rows) == 1 {
		return ErrCannotRemoveLastRow
	}
	for _, seat := range e.layout.SeatsInRow(row) {
		if seat.Status == SeatBooked {
			return ErrRowHasBookedSeats
		}
	}

	kept := e.layout.Seats[:0]
	for _, seat := range e.layout.Seats {
		if seat.Row != row {
			kept = append(kept, seat)
		}
	}
	e.layout.Seats = kept
	return nil
}

// AttachReferenceImage stores the venue reference image URL on the layout.
func (e *Editor) AttachReferenceImage(url string) {
	e.layout.ImageURL = url
}
