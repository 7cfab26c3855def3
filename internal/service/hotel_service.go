package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lodging-service/internal/domain"
	"github.com/spec-kit/lodging-service/internal/repository"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

// HotelCache holds the hotel catalogue between requests.
type HotelCache interface {
	GetHotels(ctx context.Context) ([]domain.Hotel, bool, error)
	SetHotels(ctx context.Context, hotels []domain.Hotel) error
}

// HotelService serves the gated hotel and room listings.
type HotelService struct {
	hotels      repository.HotelRepository
	rooms       repository.RoomRepository
	eligibility *EligibilityEvaluator
	cache       HotelCache
	logger      *zap.Logger
}

// HotelDependencies bundles collaborators for the hotel service.
type HotelDependencies struct {
	HotelRepo   repository.HotelRepository
	RoomRepo    repository.RoomRepository
	Eligibility *EligibilityEvaluator
	Cache       HotelCache
	Logger      *zap.Logger
}

// NewHotelService constructs the service. Cache is optional.
func NewHotelService(deps HotelDependencies) *HotelService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HotelService{
		hotels:      deps.HotelRepo,
		rooms:       deps.RoomRepo,
		eligibility: deps.Eligibility,
		cache:       deps.Cache,
		logger:      logger,
	}
}

// ListHotels returns every hotel to a user entitled to lodging.
func (s *HotelService) ListHotels(ctx context.Context, userID int64) ([]domain.Hotel, error) {
	if _, err := s.eligibility.Evaluate(ctx, userID, BrowseMode); err != nil {
		return nil, err
	}

	if s.cache != nil {
		hotels, ok, err := s.cache.GetHotels(ctx)
		if err != nil {
			s.logger.Warn("hotel cache read failed", zap.Error(err))
		} else if ok {
			return hotels, nil
		}
	}

	hotels, err := s.hotels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetHotels(ctx, hotels); err != nil {
			s.logger.Warn("hotel cache write failed", zap.Error(err))
		}
	}
	return hotels, nil
}

// ListRooms returns the hotel with its rooms. The hotel must exist before
// the user's eligibility is considered.
func (s *HotelService) ListRooms(ctx context.Context, hotelID, userID int64) (*domain.Hotel, error) {
	hotel, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("hotel", map[string]any{"hotel_id": hotelID})
		}
		return nil, fmt.Errorf("find hotel: %w", err)
	}

	if _, err := s.eligibility.Evaluate(ctx, userID, BrowseMode); err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListByHotel(ctx, hotel.ID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	hotel.Rooms = rooms
	return hotel, nil
}
