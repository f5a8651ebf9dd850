package bookings

import (
	"context"
	"errors"
	"fmt"

	"stagepass/internal/layouts"
	"stagepass/internal/selection"
	"stagepass/internal/shared/config"
	"stagepass/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrNoSeatsSelected     = errors.New("no seats selected")
	ErrNotAuthenticated    = errors.New("authentication required to proceed to payment")
	ErrInvalidStep         = errors.New("operation not allowed at this step")
	ErrCategoryUnavailable = errors.New("seat category is closed for booking")
)

// CategoryDirectory resolves category price and open/closed state.
// Implemented by the seat category service, wired at route setup.
type CategoryDirectory interface {
	LookupCategory(ctx context.Context, name string) (price float64, available bool, err error)
}

// LayoutProvider loads the live seat layout for an event. Implemented by the
// layout service, wired at route setup.
type LayoutProvider interface {
	GetLayout(ctx context.Context, eventID string) (*layouts.SeatLayout, error)
}

// PaymentArmer starts the checkout countdowns for a freshly created booking.
// Implemented by the payment window tracker, wired at route setup.
type PaymentArmer interface {
	Arm(ctx context.Context, bookingID string) error
}

// SeatView is a seat decorated with its display status for the current
// session: selection overlays availability, and seats outside the active
// category render unavailable.
type SeatView struct {
	layouts.Seat
	DisplayStatus layouts.SeatStatus `json:"display_status"`
}

type Service interface {
	StartSession(ctx context.Context, eventID, userID string) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	SeatMap(ctx context.Context, sessionID string) ([]SeatView, error)

	SelectCategory(ctx context.Context, sessionID, category string) (*Session, error)
	ToggleSeat(ctx context.Context, sessionID, seatID string) (*Session, error)
	Back(ctx context.Context, sessionID string) (*Session, error)
	ProceedToPayment(ctx context.Context, sessionID, userID string) (*Session, Totals, error)
	ComputeSessionTotals(ctx context.Context, sessionID string) (Totals, error)
	Submit(ctx context.Context, sessionID string) (*Booking, error)

	GetBooking(ctx context.Context, id string) (*Booking, error)
	GetUserBookings(ctx context.Context, userID string, limit, offset int) ([]Booking, int64, error)
	GetEventBookings(ctx context.Context, eventID string) ([]Booking, error)
}

type service struct {
	repo       Repository
	sessions   SessionStore
	layouts    LayoutProvider
	categories CategoryDirectory
	armer      PaymentArmer
	bookingCfg config.BookingConfig
}

func NewService(repo Repository, sessions SessionStore, layoutProvider LayoutProvider, categories CategoryDirectory, armer PaymentArmer, bookingCfg config.BookingConfig) Service {
	return &service{
		repo:       repo,
		sessions:   sessions,
		layouts:    layoutProvider,
		categories: categories,
		armer:      armer,
		bookingCfg: bookingCfg,
	}
}

func (s *service) StartSession(ctx context.Context, eventID, userID string) (*Session, error) {
	// Resolving the layout up front both validates the event id and warms
	// the cache for the seat map that follows.
	if _, err := s.layouts.GetLayout(ctx, eventID); err != nil {
		return nil, err
	}

	session := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		EventID:  eventID,
		Step:     StepCategorySelection,
		MaxSeats: s.bookingCfg.MaxSeatsPerBooking,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// engineFor rebuilds the selection engine from the session and the live
// layout. Seats that were booked by someone else since the last request
// silently drop out of the selection.
func (s *service) engineFor(ctx context.Context, session *Session) (*selection.Engine, *layouts.SeatLayout, error) {
	layout, err := s.layouts.GetLayout(ctx, session.EventID)
	if err != nil {
		return nil, nil, err
	}

	engine := selection.New(layout,
		selection.WithActiveCategory(session.ActiveCategory),
		selection.WithMaxSeats(session.MaxSeats),
		selection.WithCategoryGate(func(category string) bool {
			_, available, err := s.categories.LookupCategory(ctx, category)
			return err == nil && available
		}),
		selection.WithSelected(session.SelectedSeats),
	)
	return engine, layout, nil
}

func (s *service) SeatMap(ctx context.Context, sessionID string) ([]SeatView, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	engine, layout, err := s.engineFor(ctx, session)
	if err != nil {
		return nil, err
	}

	views := make([]SeatView, 0, len(layout.Seats))
	for _, seat := range layout.Seats {
		views = append(views, SeatView{
			Seat:          seat,
			DisplayStatus: engine.DeriveStatus(seat.ID),
		})
	}
	return views, nil
}

func (s *service) SelectCategory(ctx context.Context, sessionID, category string) (*Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step == StepDone {
		return nil, ErrInvalidStep
	}

	_, available, err := s.categories.LookupCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrCategoryUnavailable
	}

	// Switching category discards the previous selection.
	if session.ActiveCategory != category {
		session.SelectedSeats = nil
	}
	session.ActiveCategory = category
	session.Step = StepSeatSelection

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) ToggleSeat(ctx context.Context, sessionID, seatID string) (*Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != StepSeatSelection {
		return nil, ErrInvalidStep
	}

	engine, _, err := s.engineFor(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := engine.Toggle(seatID); err != nil {
		return nil, err
	}

	session.SelectedSeats = engine.Selected()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back steps the session towards category selection. The current selection
// is preserved so returning forward does not lose work.
func (s *service) Back(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case StepPayment:
		session.Step = StepSeatSelection
	case StepSeatSelection:
		session.Step = StepCategorySelection
	default:
		return nil, ErrInvalidStep
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// sessionTotals prices the selected seats from the live layout. The layout
// price is authoritative at checkout, not the catalog price.
func (s *service) sessionTotals(ctx context.Context, session *Session) (Totals, error) {
	layout, err := s.layouts.GetLayout(ctx, session.EventID)
	if err != nil {
		return Totals{}, err
	}

	prices := make([]float64, 0, len(session.SelectedSeats))
	for _, seatID := range session.SelectedSeats {
		seat, ok := layout.SeatByID(seatID)
		if !ok {
			return Totals{}, fmt.Errorf("selected seat %q no longer in layout", seatID)
		}
		prices = append(prices, seat.Price)
	}
	return ComputeTotals(prices, s.bookingCfg.FeeRate), nil
}

func (s *service) ComputeSessionTotals(ctx context.Context, sessionID string) (Totals, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Totals{}, err
	}
	return s.sessionTotals(ctx, session)
}

func (s *service) ProceedToPayment(ctx context.Context, sessionID, userID string) (*Session, Totals, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, Totals{}, err
	}
	if session.Step != StepSeatSelection {
		return nil, Totals{}, ErrInvalidStep
	}
	if len(session.SelectedSeats) == 0 {
		return nil, Totals{}, ErrNoSeatsSelected
	}
	if userID == "" && session.UserID == "" {
		return nil, Totals{}, ErrNotAuthenticated
	}
	if userID != "" {
		session.UserID = userID
	}

	totals, err := s.sessionTotals(ctx, session)
	if err != nil {
		return nil, Totals{}, err
	}

	session.Step = StepPayment
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, Totals{}, err
	}
	return session, totals, nil
}

func (s *service) Submit(ctx context.Context, sessionID string) (*Booking, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != StepPayment {
		return nil, ErrInvalidStep
	}
	if session.UserID == "" {
		return nil, ErrNotAuthenticated
	}

	userID, err := uuid.Parse(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}
	eventID, err := uuid.Parse(session.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	totals, err := s.sessionTotals(ctx, session)
	if err != nil {
		return nil, err
	}

	ref, err := GenerateBookingRef()
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		UserID:        userID,
		EventID:       eventID,
		SeatNumbers:   SeatNumberList(session.SelectedSeats),
		TotalAmount:   totals.Total,
		PaymentStatus: PaymentPending,
		BookingStatus: BookingPending,
		BookingRef:    ref,
	}

	if err := s.repo.CreateWithSeatReservation(ctx, booking); err != nil {
		return nil, err
	}

	if s.armer != nil {
		if err := s.armer.Arm(ctx, booking.ID.String()); err != nil {
			logger.GetDefault().ErrorWithContext(ctx, "failed to arm payment countdowns", err,
				"booking_id", booking.ID.String())
		}
	}

	session.Step = StepDone
	session.BookingID = booking.ID.String()
	if err := s.sessions.Save(ctx, session); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to finalize booking session", err,
			"session_id", session.ID)
	}

	logger.GetDefault().LogBookingCreated(ctx, booking.ID.String(), session.EventID, session.UserID, booking.TotalAmount)
	return booking, nil
}

func (s *service) GetBooking(ctx context.Context, id string) (*Booking, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID: %w", err)
	}

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID string, limit, offset int) ([]Booking, int64, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user ID: %w", err)
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetByUserID(ctx, id, limit, offset)
}

func (s *service) GetEventBookings(ctx context.Context, eventID string) ([]Booking, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}
	return s.repo.GetByEventID(ctx, id)
}
