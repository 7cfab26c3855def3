package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// PaymentRepository persists ticket payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByTicketID(ctx context.Context, ticketID int64) (*domain.Payment, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository builds the repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (ticket_id, value, card_issuer, card_last_digits)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	err := querier(ctx, r.pool).QueryRow(ctx, query,
		payment.TicketID,
		payment.Value,
		payment.CardIssuer,
		payment.CardLastDigits,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *paymentRepository) GetByTicketID(ctx context.Context, ticketID int64) (*domain.Payment, error) {
	const query = `
        SELECT id, ticket_id, value, card_issuer, card_last_digits, created_at, updated_at
        FROM payments WHERE ticket_id=$1
        ORDER BY id LIMIT 1`
	var p domain.Payment
	if err := querier(ctx, r.pool).QueryRow(ctx, query, ticketID).Scan(
		&p.ID,
		&p.TicketID,
		&p.Value,
		&p.CardIssuer,
		&p.CardLastDigits,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
