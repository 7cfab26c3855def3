package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// HotelRepository reads the hotel catalogue.
type HotelRepository interface {
	List(ctx context.Context) ([]domain.Hotel, error)
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

type hotelRepository struct {
	pool *pgxpool.Pool
}

// NewHotelRepository builds the repository.
func NewHotelRepository(pool *pgxpool.Pool) HotelRepository {
	return &hotelRepository{pool: pool}
}

func (r *hotelRepository) List(ctx context.Context) ([]domain.Hotel, error) {
	const query = `SELECT id, name, image, created_at, updated_at FROM hotels ORDER BY id`
	rows, err := querier(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Hotel{}
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

func (r *hotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	const query = `SELECT id, name, image, created_at, updated_at FROM hotels WHERE id=$1`
	var h domain.Hotel
	if err := querier(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &h, nil
}
