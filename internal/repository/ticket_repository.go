package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Reads join the ticket type.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByEnrollmentID(ctx context.Context, enrollmentID int64) (*domain.Ticket, error)
	// MarkPaid moves a RESERVED ticket to PAID. It returns pgx.ErrNoRows when
	// the ticket does not exist or was already paid.
	MarkPaid(ctx context.Context, id int64) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `
        t.id, t.ticket_type_id, t.enrollment_id, t.status, t.created_at, t.updated_at,
        tt.id, tt.name, tt.price, tt.is_remote, tt.includes_hotel, tt.created_at, tt.updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_type_id, enrollment_id, status)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	err := querier(ctx, r.pool).QueryRow(ctx, query,
		ticket.TicketTypeID,
		ticket.EnrollmentID,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + `
        FROM tickets t JOIN ticket_types tt ON tt.id = t.ticket_type_id
        WHERE t.id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByEnrollmentID(ctx context.Context, enrollmentID int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + `
        FROM tickets t JOIN ticket_types tt ON tt.id = t.ticket_type_id
        WHERE t.enrollment_id=$1
        ORDER BY t.id LIMIT 1`
	return r.fetchSingle(ctx, query, enrollmentID)
}

func (r *ticketRepository) MarkPaid(ctx context.Context, id int64) error {
	const query = `
        UPDATE tickets SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status=$3`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query, domain.TicketStatusPaid, id, domain.TicketStatusReserved)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var tt domain.TicketType
	if err := querier(ctx, r.pool).QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.TicketTypeID,
		&ticket.EnrollmentID,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&tt.ID,
		&tt.Name,
		&tt.Price,
		&tt.IsRemote,
		&tt.IncludesHotel,
		&tt.CreatedAt,
		&tt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	ticket.TicketType = &tt
	return &ticket, nil
}
