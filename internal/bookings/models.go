package bookings

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SeatNumberList stores the booked seat ids as a jsonb array.
type SeatNumberList []string

// Value implements driver.Valuer for jsonb storage.
func (s SeatNumberList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for jsonb retrieval.
func (s *SeatNumberList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for SeatNumberList")
	}
}

// Booking is a confirmed or in-flight seat reservation. TotalAmount includes
// the convenience fee. UTRNumber is empty until the buyer submits one.
type Booking struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	EventID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"event_id"`
	SeatNumbers   SeatNumberList `gorm:"type:jsonb;not null" json:"seat_numbers"`
	TotalAmount   float64        `gorm:"not null" json:"total_amount"`
	PaymentStatus PaymentStatus  `gorm:"type:varchar(20);default:'pending';index" json:"payment_status"`
	BookingStatus Status         `gorm:"type:varchar(20);default:'pending'" json:"booking_status"`
	UTRNumber     string         `gorm:"type:varchar(22)" json:"utr_number,omitempty"`
	BookingRef    string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"booking_ref"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	ConfirmedAt   *time.Time     `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time     `json:"cancelled_at,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}
