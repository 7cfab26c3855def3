package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// RoomRepository reads rooms together with their current occupancy.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	// GetForUpdate locks the room row for the rest of the transaction before
	// counting its bookings. Callers must hold a transaction in ctx.
	GetForUpdate(ctx context.Context, id int64) (*domain.Room, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
}

type roomRepository struct {
	pool *pgxpool.Pool
}

// NewRoomRepository builds the repository.
func NewRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &roomRepository{pool: pool}
}

const roomWithOccupancy = `
        SELECT r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at,
               (SELECT COUNT(*) FROM bookings b WHERE b.room_id = r.id)
        FROM rooms r`

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, roomWithOccupancy+` WHERE r.id=$1`, id)
	room, err := scanRoom(row)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	const lockQuery = `
        SELECT id, name, capacity, hotel_id, created_at, updated_at
        FROM rooms WHERE id=$1 FOR UPDATE`
	const countQuery = `SELECT COUNT(*) FROM bookings WHERE room_id=$1`

	db := querier(ctx, r.pool)
	var room domain.Room
	if err := db.QueryRow(ctx, lockQuery, id).Scan(
		&room.ID, &room.Name, &room.Capacity, &room.HotelID, &room.CreatedAt, &room.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := db.QueryRow(ctx, countQuery, id).Scan(&room.Occupancy); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, roomWithOccupancy+` WHERE r.hotel_id=$1 ORDER BY r.id`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, room)
	}
	return result, rows.Err()
}

func scanRoom(row pgx.Row) (domain.Room, error) {
	var room domain.Room
	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Capacity,
		&room.HotelID,
		&room.CreatedAt,
		&room.UpdatedAt,
		&room.Occupancy,
	)
	return room, err
}
