// Package selection implements the seat selection rules shared by the
// booking flow and the admin layout editor. The engine is pure: it holds a
// snapshot of the seat map plus the current selection and never touches
// storage.
package selection

import (
	"errors"
	"sort"

	"stagepass/internal/layouts"
)

var (
	ErrCategoryMismatch  = errors.New("seat does not belong to the active category")
	ErrSeatLimitExceeded = errors.New("seat selection limit reached")
	ErrCategoryClosed    = errors.New("seat category is closed for booking")
	ErrUnknownSeat       = errors.New("unknown seat")
)

// CategoryGate reports whether a category is open for booking. Admin mode
// bypasses the gate.
type CategoryGate func(category string) bool

// Engine applies selection rules over a seat map snapshot.
type Engine struct {
	seats          map[string]layouts.Seat
	selected       map[string]bool
	activeCategory string
	maxSeats       int
	adminMode      bool
	categoryOpen   CategoryGate
}

// Option configures an Engine.
type Option func(*Engine)

// WithActiveCategory restricts selection to seats of one category.
func WithActiveCategory(category string) Option {
	return func(e *Engine) { e.activeCategory = category }
}

// WithMaxSeats caps how many seats may be selected at once.
func WithMaxSeats(max int) Option {
	return func(e *Engine) { e.maxSeats = max }
}

// WithAdminMode lifts the category restriction for layout editing.
func WithAdminMode() Option {
	return func(e *Engine) { e.adminMode = true }
}

// WithCategoryGate installs the category availability check.
func WithCategoryGate(gate CategoryGate) Option {
	return func(e *Engine) { e.categoryOpen = gate }
}

// WithSelected preloads an existing selection, dropping ids that no longer
// resolve to a selectable seat.
func WithSelected(seatIDs []string) Option {
	return func(e *Engine) {
		for _, id := range seatIDs {
			seat, ok := e.seats[id]
			if !ok {
				continue
			}
			if seat.Status == layouts.SeatBooked || seat.Status == layouts.SeatUnavailable {
				continue
			}
			e.selected[id] = true
		}
	}
}

// New builds an engine over a layout snapshot.
func New(layout *layouts.SeatLayout, opts ...Option) *Engine {
	e := &Engine{
		seats:    make(map[string]layouts.Seat, len(layout.Seats)),
		selected: make(map[string]bool),
	}
	for _, seat := range layout.Seats {
		e.seats[seat.ID] = seat
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Toggle flips a seat in or out of the selection. Toggling a booked or
// unavailable seat is a silent no-op so stale clients degrade gracefully.
// Deselection is always allowed, even when the category has since closed.
func (e *Engine) Toggle(seatID string) error {
	seat, ok := e.seats[seatID]
	if !ok {
		return ErrUnknownSeat
	}

	if e.selected[seatID] {
		delete(e.selected, seatID)
		return nil
	}

	if seat.Status == layouts.SeatBooked || seat.Status == layouts.SeatUnavailable {
		return nil
	}
	if !e.adminMode {
		if e.activeCategory != "" && seat.Category != e.activeCategory {
			return ErrCategoryMismatch
		}
		if e.categoryOpen != nil && !e.categoryOpen(seat.Category) {
			return ErrCategoryClosed
		}
	}
	if e.maxSeats > 0 && len(e.selected) >= e.maxSeats {
		return ErrSeatLimitExceeded
	}

	e.selected[seatID] = true
	return nil
}

// DeriveStatus computes the display status for a seat. Selection overlays
// availability, persisted booked and unavailable states always win, and in
// customer mode available seats outside the active category display as
// unavailable.
func (e *Engine) DeriveStatus(seatID string) layouts.SeatStatus {
	seat, ok := e.seats[seatID]
	if !ok {
		return layouts.SeatUnavailable
	}
	if seat.Status == layouts.SeatBooked || seat.Status == layouts.SeatUnavailable {
		return seat.Status
	}
	if e.selected[seatID] {
		return layouts.SeatSelected
	}
	if !e.adminMode && e.activeCategory != "" && seat.Category != e.activeCategory {
		return layouts.SeatUnavailable
	}
	return layouts.SeatAvailable
}

// Selected returns the selected seat ids in stable sorted order.
func (e *Engine) Selected() []string {
	ids := make([]string, 0, len(e.selected))
	for id := range e.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of selected seats.
func (e *Engine) Count() int {
	return len(e.selected)
}

// Clear drops the entire selection, used when the active category changes.
func (e *Engine) Clear() {
	e.selected = make(map[string]bool)
}
