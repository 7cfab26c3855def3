package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// BookingRepository persists room bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	// UpdateRoom reassigns the booking and reaffirms its owner.
	UpdateRoom(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	// GetFirstByUserID returns the user's booking with the lowest id, with its room.
	GetFirstByUserID(ctx context.Context, userID int64) (*domain.Booking, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository builds the repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (user_id, room_id)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return querier(ctx, r.pool).QueryRow(ctx, query, booking.UserID, booking.RoomID).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *bookingRepository) UpdateRoom(ctx context.Context, booking *domain.Booking) error {
	const query = `
        UPDATE bookings SET room_id=$1, user_id=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	return querier(ctx, r.pool).QueryRow(ctx, query, booking.RoomID, booking.UserID, booking.ID).
		Scan(&booking.UpdatedAt)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const query = `
        SELECT id, user_id, room_id, created_at, updated_at
        FROM bookings WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *bookingRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	const query = `
        SELECT id, user_id, room_id, created_at, updated_at
        FROM bookings WHERE id=$1 FOR UPDATE`
	return r.fetchSingle(ctx, query, id)
}

func (r *bookingRepository) GetFirstByUserID(ctx context.Context, userID int64) (*domain.Booking, error) {
	const query = `
        SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
               r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at
        FROM bookings b JOIN rooms r ON r.id = b.room_id
        WHERE b.user_id=$1
        ORDER BY b.id LIMIT 1`
	var b domain.Booking
	var room domain.Room
	if err := querier(ctx, r.pool).QueryRow(ctx, query, userID).Scan(
		&b.ID,
		&b.UserID,
		&b.RoomID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&room.ID,
		&room.Name,
		&room.Capacity,
		&room.HotelID,
		&room.CreatedAt,
		&room.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Room = &room
	return &b, nil
}

func (r *bookingRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Booking, error) {
	return scanBooking(querier(ctx, r.pool).QueryRow(ctx, query, arg))
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
