package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lodging-service/internal/domain"
	"github.com/spec-kit/lodging-service/internal/events"
	"github.com/spec-kit/lodging-service/internal/repository"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

// PaymentService settles tickets.
type PaymentService struct {
	tx          repository.TxManager
	enrollments repository.EnrollmentRepository
	tickets     repository.TicketRepository
	payments    repository.PaymentRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// PaymentDependencies bundles collaborators for the payment service.
type PaymentDependencies struct {
	TxManager      repository.TxManager
	EnrollmentRepo repository.EnrollmentRepository
	TicketRepo     repository.TicketRepository
	PaymentRepo    repository.PaymentRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// ProcessPaymentInput describes a card payment for a ticket.
type ProcessPaymentInput struct {
	TicketID int64
	Card     domain.CardData
}

// NewPaymentService constructs the service.
func NewPaymentService(deps PaymentDependencies) *PaymentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		tx:          deps.TxManager,
		enrollments: deps.EnrollmentRepo,
		tickets:     deps.TicketRepo,
		payments:    deps.PaymentRepo,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// GetPayment returns the payment of a ticket owned by the user.
func (s *PaymentService) GetPayment(ctx context.Context, ticketID, userID int64) (*domain.Payment, error) {
	if _, err := s.ownedTicket(ctx, ticketID, userID); err != nil {
		return nil, err
	}
	payment, err := s.payments.GetByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("payment", map[string]any{"ticket_id": ticketID})
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return payment, nil
}

// ProcessPayment marks the ticket paid and records the payment atomically.
func (s *PaymentService) ProcessPayment(ctx context.Context, userID int64, input ProcessPaymentInput) (*domain.Payment, error) {
	var payment *domain.Payment
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.ownedTicket(txCtx, input.TicketID, userID)
		if err != nil {
			return err
		}
		if ticket.IsPaid() {
			return apperrors.NewConflict("ticket already paid", nil)
		}

		if err := s.tickets.MarkPaid(txCtx, ticket.ID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewConflict("ticket already paid", nil)
			}
			return fmt.Errorf("mark ticket paid: %w", err)
		}

		payment = &domain.Payment{
			TicketID:       ticket.ID,
			Value:          ticket.TicketType.Price,
			CardIssuer:     input.Card.Issuer,
			CardLastDigits: input.Card.LastDigits(),
		}
		if err := s.payments.Create(txCtx, payment); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperrors.NewConflict("ticket already paid", nil)
			}
			return fmt.Errorf("create payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment processed",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("ticket_id", payment.TicketID),
		zap.Int64("user_id", userID))
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:   events.EventPaymentProcessed,
		UserID: userID,
		Payload: events.PaymentProcessedPayload{
			PaymentID:  payment.ID,
			TicketID:   payment.TicketID,
			Value:      payment.Value,
			CardIssuer: payment.CardIssuer,
		},
	})
	return payment, nil
}

func (s *PaymentService) ownedTicket(ctx context.Context, ticketID, userID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	enrollment, err := s.enrollments.GetByID(ctx, ticket.EnrollmentID)
	if err != nil {
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	if enrollment.UserID != userID {
		return nil, apperrors.NewUnauthorized("ticket belongs to another user")
	}
	return ticket, nil
}
