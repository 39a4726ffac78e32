package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/Freeeeeet/tutor_marketplace/internal/repository"
	"github.com/Freeeeeet/tutor_marketplace/internal/repository/base"
	"go.uber.org/zap"
)

var ErrTermNameTaken = errors.New("a term with this name already exists")

// CatalogService справочники: учебные периоды и места проведения уроков
type CatalogService struct {
	termRepo  *repository.TermRepository
	venueRepo *repository.VenueRepository
	logger    *zap.Logger
}

func NewCatalogService(
	termRepo *repository.TermRepository,
	venueRepo *repository.VenueRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		termRepo:  termRepo,
		venueRepo: venueRepo,
		logger:    logger,
	}
}

// CreateTerm создаёт учебный период; начало должно быть раньше конца
func (s *CatalogService) CreateTerm(ctx context.Context, name string, startDate, endDate time.Time) (*model.Term, error) {
	if !startDate.Before(endDate) {
		return nil, fmt.Errorf("term start date must be before end date")
	}

	term := &model.Term{
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
	}

	if err := s.termRepo.Create(ctx, term); err != nil {
		if base.IsUniqueViolation(err) {
			return nil, ErrTermNameTaken
		}
		return nil, err
	}

	s.logger.Info("Term created",
		zap.Int64("term_id", term.ID),
		zap.String("name", term.Name),
	)

	return term, nil
}

// ListTerms возвращает все учебные периоды
func (s *CatalogService) ListTerms(ctx context.Context) ([]*model.Term, error) {
	return s.termRepo.List(ctx)
}

// CreateVenue создаёт место проведения уроков
func (s *CatalogService) CreateVenue(ctx context.Context, name, address, roomNumber string, capacity *int) (*model.Venue, error) {
	if capacity != nil && *capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive when set")
	}

	venue := &model.Venue{
		Name:       name,
		Address:    address,
		RoomNumber: roomNumber,
		Capacity:   capacity,
	}

	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, err
	}

	s.logger.Info("Venue created",
		zap.Int64("venue_id", venue.ID),
		zap.String("name", venue.Name),
	)

	return venue, nil
}

// ListVenues возвращает все места
func (s *CatalogService) ListVenues(ctx context.Context) ([]*model.Venue, error) {
	return s.venueRepo.List(ctx)
}
