package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stagepass/internal/bookings"
	"stagepass/internal/notifications"
	"stagepass/internal/shared/config"
	"stagepass/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound       = errors.New("booking not found")
	ErrNotOwner              = errors.New("booking belongs to another user")
	ErrUTRMissing            = errors.New("no UTR submitted for this booking")
	ErrPaymentAlreadySettled = errors.New("payment already settled")
	ErrPaymentWindowExpired  = errors.New("payment window expired")
)

// BookingStore is the slice of the booking repository the payment flow
// needs. Satisfied by bookings.Repository, wired at route setup.
type BookingStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
	GetPendingPayments(ctx context.Context) ([]bookings.Booking, error)
	SetUTR(ctx context.Context, id uuid.UUID, utr string) error
	MarkConfirmed(ctx context.Context, id uuid.UUID, utr string) error
	MarkCancelled(ctx context.Context, id uuid.UUID) error
}

// Countdowns tracks the per-booking checkout timers. Satisfied by Windows.
type Countdowns interface {
	PaymentRemaining(ctx context.Context, bookingID string) (time.Duration, bool, error)
	HoldWarningRemaining(ctx context.Context, bookingID string) (time.Duration, bool, error)
	Disarm(ctx context.Context, bookingID string) error
}

// Publisher emits booking lifecycle events. Satisfied by the notifications
// producer.
type Publisher interface {
	PublishBookingEvent(ctx context.Context, event notifications.Event) error
}

// InstructionsView is the payment page payload: UPI details plus the live
// countdown readings.
type InstructionsView struct {
	UPIInstructions
	PaymentStatus        bookings.PaymentStatus `json:"payment_status"`
	PaymentRemainingSec  int                    `json:"payment_remaining_seconds"`
	HoldWarningRemaining int                    `json:"hold_warning_remaining_seconds"`
	HoldWarningActive    bool                   `json:"hold_warning_active"`
}

type Service interface {
	Instructions(ctx context.Context, bookingID, userID string, isAdmin bool) (*InstructionsView, error)
	QRCode(ctx context.Context, bookingID, userID string, isAdmin bool) ([]byte, error)
	SubmitUTR(ctx context.Context, bookingID, userID string, isAdmin bool, utr string) (*bookings.Booking, error)

	// Admin review queue
	PendingPayments(ctx context.Context) ([]bookings.Booking, error)
	Approve(ctx context.Context, bookingID, adminID string) (*bookings.Booking, error)
	Reject(ctx context.Context, bookingID, adminID, reason string) (*bookings.Booking, error)
}

type service struct {
	store      BookingStore
	countdowns Countdowns
	publisher  Publisher
	paymentCfg config.PaymentConfig
}

func NewService(store BookingStore, countdowns Countdowns, publisher Publisher, paymentCfg config.PaymentConfig) Service {
	return &service{
		store:      store,
		countdowns: countdowns,
		publisher:  publisher,
		paymentCfg: paymentCfg,
	}
}

func (s *service) getBooking(ctx context.Context, bookingID, userID string, isAdmin bool) (*bookings.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID: %w", err)
	}

	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if !isAdmin && booking.UserID.String() != userID {
		return nil, ErrNotOwner
	}
	return booking, nil
}

// enforceExpiry lazily applies payment window expiry: a pending booking
// whose window key is gone is cancelled and its seats released. Returns the
// booking refreshed to its post-expiry state.
func (s *service) enforceExpiry(ctx context.Context, booking *bookings.Booking) (*bookings.Booking, bool, error) {
	if booking.BookingStatus.IsTerminal() {
		return booking, false, nil
	}

	_, expired, err := s.countdowns.PaymentRemaining(ctx, booking.ID.String())
	if err != nil {
		return nil, false, err
	}
	if !expired {
		return booking, false, nil
	}

	if err := s.store.MarkCancelled(ctx, booking.ID); err != nil {
		return nil, false, fmt.Errorf("failed to cancel expired booking: %w", err)
	}
	if err := s.countdowns.Disarm(ctx, booking.ID.String()); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to disarm countdowns", err,
			"booking_id", booking.ID.String())
	}
	s.publish(ctx, "payment_expired", booking)
	logger.GetDefault().LogPaymentRejected(ctx, booking.ID.String(), "payment window expired")

	refreshed, err := s.store.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to reload booking: %w", err)
	}
	return refreshed, true, nil
}

func (s *service) Instructions(ctx context.Context, bookingID, userID string, isAdmin bool) (*InstructionsView, error) {
	booking, err := s.getBooking(ctx, bookingID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	booking, expired, err := s.enforceExpiry(ctx, booking)
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrPaymentWindowExpired
	}

	view := &InstructionsView{
		UPIInstructions: UPIInstructions{
			UPIID:      s.paymentCfg.UPIID,
			PayeeName:  s.paymentCfg.PayeeName,
			Amount:     booking.TotalAmount,
			BookingRef: booking.BookingRef,
			Deeplink:   BuildDeeplink(s.paymentCfg.UPIID, s.paymentCfg.PayeeName, booking.TotalAmount, booking.BookingRef),
		},
		PaymentStatus: booking.PaymentStatus,
	}

	if remaining, _, err := s.countdowns.PaymentRemaining(ctx, booking.ID.String()); err == nil {
		view.PaymentRemainingSec = int(remaining.Seconds())
	}
	if remaining, expired, err := s.countdowns.HoldWarningRemaining(ctx, booking.ID.String()); err == nil {
		view.HoldWarningRemaining = int(remaining.Seconds())
		view.HoldWarningActive = !expired
	}

	return view, nil
}

func (s *service) QRCode(ctx context.Context, bookingID, userID string, isAdmin bool) ([]byte, error) {
	view, err := s.Instructions(ctx, bookingID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	return BuildQRCode(view.Deeplink)
}

func (s *service) SubmitUTR(ctx context.Context, bookingID, userID string, isAdmin bool, utr string) (*bookings.Booking, error) {
	normalized, err := ValidateUTR(utr)
	if err != nil {
		return nil, err
	}

	booking, err := s.getBooking(ctx, bookingID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if booking.BookingStatus.IsTerminal() {
		return nil, ErrPaymentAlreadySettled
	}

	booking, expired, err := s.enforceExpiry(ctx, booking)
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrPaymentWindowExpired
	}

	if err := s.store.SetUTR(ctx, booking.ID, normalized); err != nil {
		return nil, fmt.Errorf("failed to record UTR: %w", err)
	}
	booking.UTRNumber = normalized

	if s.paymentCfg.AutoConfirm {
		return s.confirm(ctx, booking, "auto")
	}

	s.publish(ctx, "utr_submitted", booking)
	logger.GetDefault().InfoWithContext(ctx, "UTR submitted for review",
		"booking_id", booking.ID.String(), "utr", normalized)
	return booking, nil
}

func (s *service) confirm(ctx context.Context, booking *bookings.Booking, verifiedBy string) (*bookings.Booking, error) {
	if err := s.store.MarkConfirmed(ctx, booking.ID, booking.UTRNumber); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	if err := s.countdowns.Disarm(ctx, booking.ID.String()); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to disarm countdowns", err,
			"booking_id", booking.ID.String())
	}

	confirmed, err := s.store.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	s.publish(ctx, "payment_confirmed", confirmed)
	logger.GetDefault().LogPaymentVerified(ctx, confirmed.ID.String(), confirmed.UTRNumber, verifiedBy)
	return confirmed, nil
}

func (s *service) PendingPayments(ctx context.Context) ([]bookings.Booking, error) {
	return s.store.GetPendingPayments(ctx)
}

// Approve confirms a reviewed payment. Approving an already confirmed
// booking is a no-op so double clicks in the review queue are harmless.
func (s *service) Approve(ctx context.Context, bookingID, adminID string) (*bookings.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID, adminID, true)
	if err != nil {
		return nil, err
	}

	switch booking.BookingStatus {
	case bookings.BookingConfirmed:
		return booking, nil
	case bookings.BookingCancelled:
		return nil, ErrPaymentAlreadySettled
	}
	if booking.UTRNumber == "" {
		return nil, ErrUTRMissing
	}

	return s.confirm(ctx, booking, adminID)
}

// Reject cancels a reviewed payment and releases its seats. Rejecting an
// already cancelled booking is a no-op.
func (s *service) Reject(ctx context.Context, bookingID, adminID, reason string) (*bookings.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID, adminID, true)
	if err != nil {
		return nil, err
	}

	switch booking.BookingStatus {
	case bookings.BookingCancelled:
		return booking, nil
	case bookings.BookingConfirmed:
		return nil, ErrPaymentAlreadySettled
	}

	if err := s.store.MarkCancelled(ctx, booking.ID); err != nil {
		return nil, fmt.Errorf("failed to reject booking: %w", err)
	}
	if err := s.countdowns.Disarm(ctx, booking.ID.String()); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to disarm countdowns", err,
			"booking_id", booking.ID.String())
	}

	rejected, err := s.store.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	s.publish(ctx, "payment_rejected", rejected)
	logger.GetDefault().LogPaymentRejected(ctx, rejected.ID.String(), reason)
	return rejected, nil
}

func (s *service) publish(ctx context.Context, eventType string, booking *bookings.Booking) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishBookingEvent(ctx, notifications.Event{
		Type:        eventType,
		BookingID:   booking.ID.String(),
		EventID:     booking.EventID.String(),
		UserID:      booking.UserID.String(),
		BookingRef:  booking.BookingRef,
		TotalAmount: booking.TotalAmount,
		OccurredAt:  time.Now(),
	})
	if err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to publish booking event", err,
			"booking_id", booking.ID.String(), "type", eventType)
	}
}
