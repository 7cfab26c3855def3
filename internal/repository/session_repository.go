package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// SessionRepository persists issued access tokens.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository builds the repository.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (user_id, token)
        VALUES ($1, $2)
        RETURNING id, created_at`
	return querier(ctx, r.pool).QueryRow(ctx, query, session.UserID, session.Token).
		Scan(&session.ID, &session.CreatedAt)
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	const query = `SELECT id, user_id, token, created_at FROM sessions WHERE token=$1`
	var session domain.Session
	if err := querier(ctx, r.pool).QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&session.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}
