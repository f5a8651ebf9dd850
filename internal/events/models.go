package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is read-only input to the booking flow: it is managed by the
// content back office, this service only reads it.
type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Venue     string    `gorm:"not null" json:"venue"`
	City      string    `gorm:"not null" json:"city"`
	Date      time.Time `gorm:"not null" json:"date"`
	ShowTime  string    `gorm:"type:varchar(10)" json:"time"`
	BasePrice float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Event
func (Event) TableName() string {
	return "events"
}
