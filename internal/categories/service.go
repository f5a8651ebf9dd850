package categories

import (
	"context"
	"errors"
	"fmt"

	"stagepass/internal/shared/constants"
	"stagepass/pkg/cache"
	"stagepass/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrCategoryNotFound is returned when a category name has no catalog entry.
var ErrCategoryNotFound = errors.New("seat category not found")

type Service interface {
	List(ctx context.Context) ([]SeatCategory, error)
	PriceOf(ctx context.Context, name string) (float64, error)

	// LookupCategory resolves price and availability for a category name.
	// Unknown names resolve to the uncategorized fallback rather than an
	// error so a stale seat document never breaks rendering.
	LookupCategory(ctx context.Context, name string) (price float64, available bool, err error)

	// Admin operations
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*SeatCategory, error)
	UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*SeatCategory, error)
	DeleteCategory(ctx context.Context, id string) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// SetCacheService enables the redis cache-aside path.
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) List(ctx context.Context) ([]SeatCategory, error) {
	if s.cacheService != nil {
		var cached []SeatCategory
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_CATEGORY_LIST, constants.TTL_CATEGORY_LIST,
			func() (interface{}, error) {
				return s.repo.List(ctx)
			}, &cached)
		if err == nil {
			return cached, nil
		}
		logger.GetDefault().Debug("category list cache path failed, falling back to db", "error", err)
	}

	return s.repo.List(ctx)
}

func (s *service) getByName(ctx context.Context, name string) (*SeatCategory, error) {
	if s.cacheService != nil {
		var cached SeatCategory
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_CATEGORY_BYNAME+name, constants.TTL_CATEGORY_DETAIL,
			func() (interface{}, error) {
				return s.repo.GetByName(ctx, name)
			}, &cached)
		if err == nil {
			return &cached, nil
		}
	}

	return s.repo.GetByName(ctx, name)
}

func (s *service) PriceOf(ctx context.Context, name string) (float64, error) {
	category, err := s.getByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCategoryNotFound
		}
		return 0, fmt.Errorf("failed to look up category: %w", err)
	}
	return category.Price, nil
}

func (s *service) LookupCategory(ctx context.Context, name string) (float64, bool, error) {
	category, err := s.getByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Uncategorized: neutral price, open for selection
			return UncategorizedPrice, true, nil
		}
		return 0, false, fmt.Errorf("failed to look up category: %w", err)
	}
	return category.Price, category.Available, nil
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*SeatCategory, error) {
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	category := &SeatCategory{
		Name:      req.Name,
		Price:     req.Price,
		Color:     req.Color,
		Available: available,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCache(ctx)
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*SeatCategory, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, categoryID, updates); err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
		s.invalidateCache(ctx)
	}

	category, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid category ID: %w", err)
	}

	if _, err := s.repo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_CATEGORIES); err != nil {
		logger.GetDefault().Debug("failed to invalidate category cache", "error", err)
	}
}
