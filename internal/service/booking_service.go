package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lodging-service/internal/domain"
	"github.com/spec-kit/lodging-service/internal/events"
	"github.com/spec-kit/lodging-service/internal/repository"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

// BookingService coordinates room booking workflows.
type BookingService struct {
	tx          repository.TxManager
	bookings    repository.BookingRepository
	eligibility *EligibilityEvaluator
	capacity    *CapacityAllocator
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// BookingDependencies bundles collaborators for the booking service.
type BookingDependencies struct {
	TxManager   repository.TxManager
	BookingRepo repository.BookingRepository
	Eligibility *EligibilityEvaluator
	Capacity    *CapacityAllocator
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		tx:          deps.TxManager,
		bookings:    deps.BookingRepo,
		eligibility: deps.Eligibility,
		capacity:    deps.Capacity,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// GetBooking returns the user's current booking with its room.
func (s *BookingService) GetBooking(ctx context.Context, userID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetFirstByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("booking", nil)
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return booking, nil
}

// CreateBooking reserves a place in roomID for the user. A roomID of zero
// means the caller did not supply one.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID int64) (*domain.Booking, error) {
	if roomID <= 0 {
		return nil, apperrors.NewForbidden("invalid room id")
	}

	var (
		booking *domain.Booking
		room    *domain.Room
	)
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := s.eligibility.Evaluate(txCtx, userID, BookingMode); err != nil {
			return err
		}

		var err error
		room, err = s.capacity.CheckRoomCapacity(txCtx, roomID)
		if err != nil {
			return err
		}

		booking = &domain.Booking{UserID: userID, RoomID: room.ID}
		if err := s.bookings.Create(txCtx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
		zap.Int64("room_id", room.ID))
	s.publishEvent(ctx, events.Event{
		Type:   events.EventBookingCreated,
		UserID: userID,
		Payload: events.BookingCreatedPayload{
			BookingID: booking.ID,
			RoomID:    room.ID,
			HotelID:   room.HotelID,
		},
	})
	return booking, nil
}

// UpdateBooking moves the user's booking to roomID. A roomID of zero means
// the caller did not supply one.
func (s *BookingService) UpdateBooking(ctx context.Context, userID, roomID, bookingID int64) (*domain.Booking, error) {
	if roomID == 0 {
		return nil, apperrors.NewNotFound("room", nil)
	}
	if roomID < 0 {
		return nil, apperrors.NewForbidden("invalid room id")
	}

	var (
		booking    *domain.Booking
		fromRoomID int64
	)
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := s.eligibility.Evaluate(txCtx, userID, BookingMode); err != nil {
			return err
		}

		current, err := s.bookings.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			// Existence is not distinguished from ownership.
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewForbidden("booking not accessible")
			}
			return fmt.Errorf("find booking: %w", err)
		}
		if current.UserID != userID {
			return apperrors.NewForbidden("booking not accessible")
		}

		// The booking's own place still counts toward the target room's occupancy.
		room, err := s.capacity.CheckRoomCapacity(txCtx, roomID)
		if err != nil {
			return err
		}

		fromRoomID = current.RoomID
		current.RoomID = room.ID
		current.UserID = userID
		if err := s.bookings.UpdateRoom(txCtx, current); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		booking = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking moved",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
		zap.Int64("from_room_id", fromRoomID),
		zap.Int64("to_room_id", booking.RoomID))
	s.publishEvent(ctx, events.Event{
		Type:   events.EventBookingUpdated,
		UserID: userID,
		Payload: events.BookingUpdatedPayload{
			BookingID:  booking.ID,
			FromRoomID: fromRoomID,
			ToRoomID:   booking.RoomID,
		},
	})
	return booking, nil
}

func (s *BookingService) publishEvent(ctx context.Context, event events.Event) {
	publish(ctx, s.dispatcher, s.logger, event)
}

// publish stamps and dispatches an event. Delivery failures never fail the
// already committed operation.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event delivery failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
