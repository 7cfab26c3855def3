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

// EligibilityMode selects which error kinds a failed lodging check surfaces.
type EligibilityMode int

const (
	// BrowseMode is used when listing hotels and rooms.
	BrowseMode EligibilityMode = iota
	// BookingMode is used when creating or moving a booking.
	BookingMode
)

func (m EligibilityMode) String() string {
	if m == BookingMode {
		return "booking"
	}
	return "browse"
}

// eligibilityFailures is the error table of one mode, one entry per rule.
type eligibilityFailures struct {
	missingEnrollment func() error
	missingTicket     func() error
	unpaidTicket      func() error
	noLodging         func() error
}

var failuresByMode = map[EligibilityMode]eligibilityFailures{
	BrowseMode: {
		missingEnrollment: func() error { return apperrors.NewNotFound("enrollment", nil) },
		missingTicket:     func() error { return apperrors.NewNotFound("ticket", nil) },
		unpaidTicket:      func() error { return apperrors.NewPaymentRequired("ticket not paid") },
		noLodging:         func() error { return apperrors.NewUnauthorized("ticket does not include lodging") },
	},
	BookingMode: {
		missingEnrollment: func() error { return apperrors.NewForbidden("enrollment required") },
		missingTicket:     func() error { return apperrors.NewNotFound("ticket", nil) },
		unpaidTicket:      func() error { return apperrors.NewPaymentRequired("ticket not paid") },
		noLodging:         func() error { return apperrors.NewForbidden("ticket does not include lodging") },
	},
}

// Lodging is the resolved entitlement of an eligible user.
type Lodging struct {
	Enrollment *domain.Enrollment
	Ticket     *domain.Ticket
	TicketType *domain.TicketType
}

// EligibilityEvaluator decides whether a user's ticket grants hotel services.
type EligibilityEvaluator struct {
	enrollments repository.EnrollmentRepository
	tickets     repository.TicketRepository
}

// NewEligibilityEvaluator constructs the evaluator.
func NewEligibilityEvaluator(enrollments repository.EnrollmentRepository, tickets repository.TicketRepository) *EligibilityEvaluator {
	return &EligibilityEvaluator{enrollments: enrollments, tickets: tickets}
}

// Evaluate runs the lodging rules in order and stops at the first failure:
// enrollment exists, ticket exists, ticket is paid, ticket type is
// in-person and hotel-inclusive.
func (e *EligibilityEvaluator) Evaluate(ctx context.Context, userID int64, mode EligibilityMode) (*Lodging, error) {
	failures, ok := failuresByMode[mode]
	if !ok {
		return nil, fmt.Errorf("unknown eligibility mode %d", mode)
	}

	enrollment, err := e.enrollments.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, failures.missingEnrollment()
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}

	ticket, err := e.tickets.GetByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, failures.missingTicket()
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}

	if !ticket.IsPaid() {
		return nil, failures.unpaidTicket()
	}

	if ticket.TicketType == nil || !ticket.TicketType.GrantsLodging() {
		return nil, failures.noLodging()
	}

	return &Lodging{Enrollment: enrollment, Ticket: ticket, TicketType: ticket.TicketType}, nil
}
