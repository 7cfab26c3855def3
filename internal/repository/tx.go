package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DBTX is the query surface shared by the pool and an open transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxManager runs a unit of work atomically.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TxOptions bounds retries of serialization failures and deadlocks.
// IsoLevel defaults to READ COMMITTED: every statement sees rows committed
// before it started, so a count taken after a FOR UPDATE lock is current.
type TxOptions struct {
	MaxRetries int
	BaseDelay  time.Duration
	IsoLevel   pgx.TxIsoLevel
	Logger     *zap.Logger
}

type txKey struct{}

type pgxTxManager struct {
	pool       *pgxpool.Pool
	maxRetries int
	baseDelay  time.Duration
	isoLevel   pgx.TxIsoLevel
	logger     *zap.Logger
}

// NewTxManager returns a manager running work in transactions at opts.IsoLevel.
func NewTxManager(pool *pgxpool.Pool, opts TxOptions) TxManager {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	baseDelay := opts.BaseDelay
	if baseDelay <= 0 {
		baseDelay = 10 * time.Millisecond
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	isoLevel := opts.IsoLevel
	if isoLevel == "" {
		isoLevel = pgx.ReadCommitted
	}
	return &pgxTxManager{pool: pool, maxRetries: maxRetries, baseDelay: baseDelay, isoLevel: isoLevel, logger: logger}
}

// WithinTx executes fn inside a transaction, retrying the whole unit on
// serialization failures and deadlocks. Nested calls join the outer transaction.
func (m *pgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = m.baseDelay
	policy.MaxInterval = 50 * m.baseDelay
	policy.MaxElapsedTime = 0

	attempt := 0
	operation := func() error {
		attempt++
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if IsRetryable(err) {
			m.logger.Warn("transaction conflict; retrying", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		return backoff.Permanent(err)
	}

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(m.maxRetries)), ctx))
}

func (m *pgxTxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: m.isoLevel})
	if err != nil {
		return err
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// IsRetryable reports whether err is a transient conflict the storage engine asks us to retry.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func txFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

// querier picks the context transaction when one is open, the pool otherwise.
func querier(ctx context.Context, pool *pgxpool.Pool) DBTX {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}
