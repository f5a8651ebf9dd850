package layouts

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// SeatStatus is the persisted state of a seat. "selected" is a transient
// client overlay derived by the selection engine and never stored.
type SeatStatus string

const (
	SeatAvailable   SeatStatus = "available"
	SeatUnavailable SeatStatus = "unavailable"
	SeatBooked      SeatStatus = "booked"
	SeatSelected    SeatStatus = "selected"
)

// Seat is one bookable position in a venue layout. ID is derived as
// row + number ("C14") and is unique within a layout.
type Seat struct {
	ID       string     `json:"id"`
	Row      string     `json:"row"`
	Number   int        `json:"number"`
	Status   SeatStatus `json:"status"`
	Category string     `json:"category"`
	Price    float64    `json:"price"`
}

// SeatID derives the canonical seat id from row and number.
func SeatID(row string, number int) string {
	return fmt.Sprintf("%s%d", row, number)
}

// SeatLayout is the full seat document for one event, persisted wholesale
// as a single JSON blob.
type SeatLayout struct {
	Venue    string `json:"venue"`
	Seats    []Seat `json:"seats"`
	ImageURL string `json:"image_url,omitempty"`
}

// ErrInvalidLayout is returned when a persisted layout document fails shape
// validation; callers fall back to the default generator instead of crashing.
var ErrInvalidLayout = errors.New("invalid seat layout document")

// Validate checks the document shape on read: non-empty seats, derivable ids,
// unique ids, known statuses.
func (l *SeatLayout) Validate() error {
	if l == nil || len(l.Seats) == 0 {
		return fmt.Errorf("%w: no seats", ErrInvalidLayout)
	}

	seen := make(map[string]bool, len(l.Seats))
	for _, seat := range l.Seats {
		if seat.Row == "" || seat.Number < 1 {
			return fmt.Errorf("%w: seat %q has no row/number", ErrInvalidLayout, seat.ID)
		}
		if seat.ID != SeatID(seat.Row, seat.Number) {
			return fmt.Errorf("%w: seat id %q does not match row %q number %d", ErrInvalidLayout, seat.ID, seat.Row, seat.Number)
		}
		if seen[seat.ID] {
			return fmt.Errorf("%w: duplicate seat id %q", ErrInvalidLayout, seat.ID)
		}
		seen[seat.ID] = true

		switch seat.Status {
		case SeatAvailable, SeatUnavailable, SeatBooked:
		default:
			return fmt.Errorf("%w: seat %q has unknown status %q", ErrInvalidLayout, seat.ID, seat.Status)
		}
	}

	return nil
}

// SeatByID returns the seat with the given id, if present.
func (l *SeatLayout) SeatByID(id string) (*Seat, bool) {
	for i := range l.Seats {
		if l.Seats[i].ID == id {
			return &l.Seats[i], true
		}
	}
	return nil, false
}

// Rows returns the distinct row labels in layout order.
func (l *SeatLayout) Rows() []string {
	seen := make(map[string]bool)
	var rows []string
	for _, seat := range l.Seats {
		if !seen[seat.Row] {
			seen[seat.Row] = true
			rows = append(rows, seat.Row)
		}
	}
	return rows
}

// SeatsInRow returns the seats of one row ordered by number.
func (l *SeatLayout) SeatsInRow(row string) []Seat {
	var seats []Seat
	for _, seat := range l.Seats {
		if seat.Row == row {
			seats = append(seats, seat)
		}
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i].Number < seats[j].Number })
	return seats
}

// LayoutRecord is the persisted row in seat_layouts: one per event, the
// layout document stored as jsonb.
type LayoutRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"event_id"`
	Venue      string    `gorm:"not null" json:"venue"`
	ImageURL   string    `json:"image_url,omitempty"`
	LayoutData []byte    `gorm:"type:jsonb;not null" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name for LayoutRecord
func (LayoutRecord) TableName() string {
	return "seat_layouts"
}

// Decode unmarshals and validates the stored layout document.
func (r *LayoutRecord) Decode() (*SeatLayout, error) {
	var layout SeatLayout
	if err := json.Unmarshal(r.LayoutData, &layout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// Encode marshals a layout document into the record.
func (r *LayoutRecord) Encode(layout *SeatLayout) error {
	data, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to marshal seat layout: %w", err)
	}
	r.Venue = layout.Venue
	r.ImageURL = layout.ImageURL
	r.LayoutData = data
	return nil
}
