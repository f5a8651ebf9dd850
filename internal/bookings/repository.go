package bookings

import (
	"context"
	"fmt"
	"time"

	"stagepass/internal/layouts"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeatsUnavailableError reports which requested seats were already taken
// when the reservation transaction ran.
type SeatsUnavailableError struct {
	Seats []string
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats no longer available: %v", e.Seats)
}

type Repository interface {
	// CreateWithSeatReservation books the seats and inserts the booking in
	// one transaction, locking the event's layout row against concurrent
	// checkouts.
	CreateWithSeatReservation(ctx context.Context, booking *Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) ([]Booking, error)
	GetPendingPayments(ctx context.Context) ([]Booking, error)

	SetUTR(ctx context.Context, id uuid.UUID, utr string) error
	MarkConfirmed(ctx context.Context, id uuid.UUID, utr string) error
	// MarkCancelled fails the payment, cancels the booking, and releases its
	// seats back to available in the same transaction.
	MarkCancelled(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithSeatReservation(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record layouts.LayoutRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", booking.EventID).
			First(&record).Error
		if err != nil {
			return fmt.Errorf("failed to lock seat layout: %w", err)
		}

		layout, err := record.Decode()
		if err != nil {
			return err
		}

		var unavailable []string
		for _, seatID := range booking.SeatNumbers {
			seat, ok := layout.SeatByID(seatID)
			if !ok || seat.Status != layouts.SeatAvailable {
				unavailable = append(unavailable, seatID)
			}
		}
		if len(unavailable) > 0 {
			return &SeatsUnavailableError{Seats: unavailable}
		}

		for _, seatID := range booking.SeatNumbers {
			seat, _ := layout.SeatByID(seatID)
			seat.Status = layouts.SeatBooked
		}

		if err := record.Encode(layout); err != nil {
			return err
		}
		if err := tx.Model(&record).Update("layout_data", record.LayoutData).Error; err != nil {
			return fmt.Errorf("failed to update seat layout: %w", err)
		}

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error) {
	var bookings []Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&bookings).Error
	return bookings, total, err
}

func (r *repository) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) GetPendingPayments(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("payment_status = ? AND utr_number <> ''", PaymentPending).
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) SetUTR(ctx context.Context, id uuid.UUID, utr string) error {
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Update("utr_number", utr).Error
}

func (r *repository) MarkConfirmed(ctx context.Context, id uuid.UUID, utr string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": PaymentCompleted,
			"booking_status": BookingConfirmed,
			"utr_number":     utr,
			"confirmed_at":   &now,
		}).Error
}

func (r *repository) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&booking).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"payment_status": PaymentFailed,
			"booking_status": BookingCancelled,
			"cancelled_at":   &now,
		}).Error; err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		// Release the seats held by this booking.
		var record layouts.LayoutRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", booking.EventID).
			First(&record).Error
		if err != nil {
			return fmt.Errorf("failed to lock seat layout: %w", err)
		}

		layout, err := record.Decode()
		if err != nil {
			return err
		}
		for _, seatID := range booking.SeatNumbers {
			if seat, ok := layout.SeatByID(seatID); ok && seat.Status == layouts.SeatBooked {
				seat.Status = layouts.SeatAvailable
			}
		}
		if err := record.Encode(layout); err != nil {
			return err
		}
		return tx.Model(&record).Update("layout_data", record.LayoutData).Error
	})
}
