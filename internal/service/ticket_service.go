package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lodging-service/internal/domain"
	"github.com/spec-kit/lodging-service/internal/repository"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

// TicketService coordinates ticket purchase workflows.
type TicketService struct {
	enrollments repository.EnrollmentRepository
	tickets     repository.TicketRepository
	ticketTypes repository.TicketTypeRepository
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	EnrollmentRepo repository.EnrollmentRepository
	TicketRepo     repository.TicketRepository
	TicketTypeRepo repository.TicketTypeRepository
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		enrollments: deps.EnrollmentRepo,
		tickets:     deps.TicketRepo,
		ticketTypes: deps.TicketTypeRepo,
	}
}

// ListTicketTypes returns all ticket types.
func (s *TicketService) ListTicketTypes(ctx context.Context) ([]domain.TicketType, error) {
	types, err := s.ticketTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ticket types: %w", err)
	}
	return types, nil
}

// GetTicket returns the user's ticket with its type.
func (s *TicketService) GetTicket(ctx context.Context, userID int64) (*domain.Ticket, error) {
	enrollment, err := s.findEnrollment(ctx, userID)
	if err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return ticket, nil
}

// CreateTicket reserves a ticket of the given type for the user.
func (s *TicketService) CreateTicket(ctx context.Context, userID, ticketTypeID int64) (*domain.Ticket, error) {
	enrollment, err := s.findEnrollment(ctx, userID)
	if err != nil {
		return nil, err
	}

	ticketType, err := s.ticketTypes.GetByID(ctx, ticketTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket type", map[string]any{"ticket_type_id": ticketTypeID})
		}
		return nil, fmt.Errorf("find ticket type: %w", err)
	}

	ticket := &domain.Ticket{
		TicketTypeID: ticketType.ID,
		EnrollmentID: enrollment.ID,
		Status:       domain.TicketStatusReserved,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("ticket already exists for enrollment", nil)
		}
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	ticket.TicketType = ticketType
	return ticket, nil
}

func (s *TicketService) findEnrollment(ctx context.Context, userID int64) (*domain.Enrollment, error) {
	enrollment, err := s.enrollments.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("enrollment", nil)
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return enrollment, nil
}
