package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]SeatCategory, error)
	GetByName(ctx context.Context, name string) (*SeatCategory, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SeatCategory, error)
	Create(ctx context.Context, category *SeatCategory) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]SeatCategory, error) {
	var categories []SeatCategory
	err := r.db.WithContext(ctx).Order("price DESC").Find(&categories).Error
	return categories, err
}

func (r *repository) GetByName(ctx context.Context, name string) (*SeatCategory, error) {
	var category SeatCategory
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*SeatCategory, error) {
	var category SeatCategory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) Create(ctx context.Context, category *SeatCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&SeatCategory{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&SeatCategory{}).Error
}
