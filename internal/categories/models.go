package categories

import (
	"time"

	"github.com/google/uuid"
)

// SeatCategory is a named pricing tier (e.g. Premium/Gold/Silver). The set is
// open: admins add and remove tiers, seats reference them by name.
type SeatCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Color     string    `gorm:"type:varchar(20);not null" json:"color"`
	Available bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for SeatCategory
func (SeatCategory) TableName() string {
	return "seat_categories"
}

// Neutral fallbacks for seats whose category no longer exists in the catalog.
// Selection must not fail hard on an unknown name.
const (
	UncategorizedColor = "#9ca3af"
	UncategorizedPrice = 0.0
)

type CreateCategoryRequest struct {
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Color     string  `json:"color" binding:"required"`
	Available *bool   `json:"available"`
}

type UpdateCategoryRequest struct {
	Price     *float64 `json:"price" binding:"omitempty,gt=0"`
	Color     *string  `json:"color" binding:"omitempty"`
	Available *bool    `json:"available"`
}
