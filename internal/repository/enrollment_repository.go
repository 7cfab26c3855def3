package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// EnrollmentRepository reads event enrollments.
type EnrollmentRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*domain.Enrollment, error)
}

type enrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository builds the repository.
func NewEnrollmentRepository(pool *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{pool: pool}
}

func (r *enrollmentRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Enrollment, error) {
	const query = `
        SELECT id, user_id, name, cpf, phone, created_at, updated_at
        FROM enrollments WHERE user_id=$1
        ORDER BY id LIMIT 1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id int64) (*domain.Enrollment, error) {
	const query = `
        SELECT id, user_id, name, cpf, phone, created_at, updated_at
        FROM enrollments WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *enrollmentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Enrollment, error) {
	var e domain.Enrollment
	if err := querier(ctx, r.pool).QueryRow(ctx, query, arg).Scan(
		&e.ID,
		&e.UserID,
		&e.Name,
		&e.CPF,
		&e.Phone,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}
