package layouts

import (
	"context"
	"errors"
	"fmt"

	"stagepass/internal/shared/config"
	"stagepass/internal/shared/constants"
	"stagepass/pkg/cache"
	"stagepass/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrLayoutNotFound is returned when an event id does not resolve to a venue.
var ErrLayoutNotFound = errors.New("seat layout not found")

// CategoryCatalog resolves category prices for generation and row edits.
// Implemented by the seat category service, wired at route setup.
type CategoryCatalog interface {
	PriceOf(ctx context.Context, name string) (float64, error)
}

// VenueDirectory resolves the venue name for an event so generated layouts
// carry it. Implemented by the event service, wired at route setup.
type VenueDirectory interface {
	VenueOf(ctx context.Context, eventID string) (string, error)
}

type Service interface {
	// GetLayout returns the event's seat layout, generating and persisting
	// a default one on first access.
	GetLayout(ctx context.Context, eventID string) (*SeatLayout, error)
	SaveLayout(ctx context.Context, eventID string, layout *SeatLayout) error

	ToggleSeat(ctx context.Context, eventID, seatID string) (*Seat, error)
	AddRow(ctx context.Context, eventID string, req AddRowRequest) (*SeatLayout, error)
	RemoveRow(ctx context.Context, eventID, row string) (*SeatLayout, error)
	SetRowCategory(ctx context.Context, eventID, row, category string) (*SeatLayout, error)
	AttachReferenceImage(ctx context.Context, eventID, url string) error
}

type service struct {
	repo         Repository
	categories   CategoryCatalog
	venues       VenueDirectory
	cacheService cache.Service
	layoutCfg    config.LayoutConfig
}

func NewService(repo Repository, categories CategoryCatalog, venues VenueDirectory, layoutCfg config.LayoutConfig) *service {
	return &service{
		repo:       repo,
		categories: categories,
		venues:     venues,
		layoutCfg:  layoutCfg,
	}
}

// SetCacheService enables the redis cache-aside path.
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetLayout(ctx context.Context, eventID string) (*SeatLayout, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	if s.cacheService != nil {
		var cached SeatLayout
		err := s.cacheService.GetOrSet(ctx, constants.BuildLayoutKey(eventID), constants.TTL_LAYOUT,
			func() (interface{}, error) {
				return s.loadOrGenerate(ctx, id)
			}, &cached)
		if err == nil {
			return &cached, nil
		}
		if errors.Is(err, ErrLayoutNotFound) {
			return nil, err
		}
		logger.GetDefault().Debug("layout cache path failed, falling back to db", "error", err)
	}

	return s.loadOrGenerate(ctx, id)
}

// loadOrGenerate fetches the persisted layout. Missing or corrupt documents
// are replaced with a freshly generated default, which is saved so the
// booking flow always has a row to lock.
func (s *service) loadOrGenerate(ctx context.Context, eventID uuid.UUID) (*SeatLayout, error) {
	record, err := s.repo.GetByEventID(ctx, eventID)
	if err == nil {
		layout, decodeErr := record.Decode()
		if decodeErr == nil {
			return layout, nil
		}
		logger.GetDefault().Warn("stored seat layout is invalid, regenerating default",
			"event_id", eventID.String(), "error", decodeErr)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load seat layout: %w", err)
	}

	venue, err := s.venues.VenueOf(ctx, eventID.String())
	if err != nil {
		return nil, ErrLayoutNotFound
	}

	layout := Generate(GeneratorConfig{
		Venue:               venue,
		Rows:                s.layoutCfg.Rows,
		SeatsPerRow:         s.layoutCfg.SeatsPerRow,
		UnavailableFraction: s.layoutCfg.UnavailableFraction,
		Seed:                s.layoutCfg.Seed,
		DefaultSeatPrice:    s.layoutCfg.DefaultSeatPrice,
	}, func(category string) (float64, error) {
		return s.categories.PriceOf(ctx, category)
	})

	if err := s.persist(ctx, eventID, layout); err != nil {
		return nil, err
	}

	logger.GetDefault().LogLayoutSaved(ctx, eventID.String(), len(layout.Seats))
	return layout, nil
}

func (s *service) SaveLayout(ctx context.Context, eventID string, layout *SeatLayout) error {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return err
	}
	if err := s.persist(ctx, id, layout); err != nil {
		return err
	}

	logger.GetDefault().LogLayoutSaved(ctx, eventID, len(layout.Seats))
	return nil
}

func (s *service) persist(ctx context.Context, eventID uuid.UUID, layout *SeatLayout) error {
	record := &LayoutRecord{EventID: eventID}
	if err := record.Encode(layout); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to save seat layout: %w", err)
	}

	s.invalidateCache(ctx, eventID.String())
	return nil
}

func (s *service) invalidateCache(ctx context.Context, eventID string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildLayoutKey(eventID)); err != nil {
		logger.GetDefault().Debug("failed to invalidate layout cache", "error", err)
	}
}

// edit loads the layout, applies one editor mutation, and saves the result.
func (s *service) edit(ctx context.Context, eventID string, mutate func(*Editor) error) (*SeatLayout, error) {
	layout, err := s.GetLayout(ctx, eventID)
	if err != nil {
		return nil, err
	}

	editor := NewEditor(layout)
	if err := mutate(editor); err != nil {
		return nil, err
	}

	result := editor.Layout()
	if err := s.SaveLayout(ctx, eventID, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) ToggleSeat(ctx context.Context, eventID, seatID string) (*Seat, error) {
	var toggled Seat
	_, err := s.edit(ctx, eventID, func(e *Editor) error {
		seat, err := e.ToggleSeatAvailability(seatID)
		if err != nil {
			return err
		}
		toggled = *seat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &toggled, nil
}

func (s *service) AddRow(ctx context.Context, eventID string, req AddRowRequest) (*SeatLayout, error) {
	price, err := s.categories.PriceOf(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	return s.edit(ctx, eventID, func(e *Editor) error {
		return e.AddRow(req.Row, req.Seats, req.Category, price)
	})
}

func (s *service) RemoveRow(ctx context.Context, eventID, row string) (*SeatLayout, error) {
	return s.edit(ctx, eventID, func(e *Editor) error {
		return e.RemoveRow(row)
	})
}

func (s *service) SetRowCategory(ctx context.Context, eventID, row, category string) (*SeatLayout, error) {
	price, err := s.categories.PriceOf(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.edit(ctx, eventID, func(e *Editor) error {
		return e.SetRowCategory(row, category, price)
	})
}

func (s *service) AttachReferenceImage(ctx context.Context, eventID, url string) error {
	_, err := s.edit(ctx, eventID, func(e *Editor) error {
		e.AttachReferenceImage(url)
		return nil
	})
	return err
}
