package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lodging-service/internal/api/dto"
	"github.com/spec-kit/lodging-service/internal/domain"
	"github.com/spec-kit/lodging-service/internal/service"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

// PaymentService is the payment surface the handler needs.
type PaymentService interface {
	GetPayment(ctx context.Context, ticketID, userID int64) (*domain.Payment, error)
	ProcessPayment(ctx context.Context, userID int64, input service.ProcessPaymentInput) (*domain.Payment, error)
}

// PaymentsHandler exposes ticket payment endpoints.
type PaymentsHandler struct {
	service PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService PaymentService) *PaymentsHandler {
	return &PaymentsHandler{service: paymentService}
}

// GetPayment GET /payments?ticketId=.
func (h *PaymentsHandler) GetPayment(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	ticketID, ok := parseID(c.Query("ticketId"))
	if !ok {
		return apperrors.NewValidationError("ticketId must be a positive integer", nil)
	}

	payment, err := h.service.GetPayment(c.UserContext(), ticketID, userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPaymentResponse(payment))
}

// ProcessPayment POST /payments/process.
func (h *PaymentsHandler) ProcessPayment(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.ProcessPaymentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	payment, err := h.service.ProcessPayment(c.UserContext(), userID, service.ProcessPaymentInput{
		TicketID: req.TicketID,
		Card:     req.Card(),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPaymentResponse(payment))
}
