package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// TicketTypeRepository reads ticket type reference data.
type TicketTypeRepository interface {
	List(ctx context.Context) ([]domain.TicketType, error)
	GetByID(ctx context.Context, id int64) (*domain.TicketType, error)
}

type ticketTypeRepository struct {
	pool *pgxpool.Pool
}

// NewTicketTypeRepository builds the repository.
func NewTicketTypeRepository(pool *pgxpool.Pool) TicketTypeRepository {
	return &ticketTypeRepository{pool: pool}
}

func (r *ticketTypeRepository) List(ctx context.Context) ([]domain.TicketType, error) {
	const query = `
        SELECT id, name, price, is_remote, includes_hotel, created_at, updated_at
        FROM ticket_types ORDER BY id`
	rows, err := querier(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.TicketType{}
	for rows.Next() {
		var tt domain.TicketType
		if err := rows.Scan(&tt.ID, &tt.Name, &tt.Price, &tt.IsRemote, &tt.IncludesHotel, &tt.CreatedAt, &tt.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, tt)
	}
	return result, rows.Err()
}

func (r *ticketTypeRepository) GetByID(ctx context.Context, id int64) (*domain.TicketType, error) {
	const query = `
        SELECT id, name, price, is_remote, includes_hotel, created_at, updated_at
        FROM ticket_types WHERE id=$1`
	var tt domain.TicketType
	if err := querier(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&tt.ID, &tt.Name, &tt.Price, &tt.IsRemote, &tt.IncludesHotel, &tt.CreatedAt, &tt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &tt, nil
}
