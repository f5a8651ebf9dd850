package layouts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*LayoutRecord, error)
	Upsert(ctx context.Context, record *LayoutRecord) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*LayoutRecord, error) {
	var record LayoutRecord
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert inserts the layout row or replaces its document if the event
// already has one. One row per event is enforced by the unique index.
func (r *repository) Upsert(ctx context.Context, record *LayoutRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"venue", "image_url", "layout_data", "updated_at"}),
	}).Create(record).Error
}
