package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lodging-service/internal/api/dto"
	"github.com/spec-kit/lodging-service/internal/domain"
)

// TicketService is the ticket surface the handler needs.
type TicketService interface {
	ListTicketTypes(ctx context.Context) ([]domain.TicketType, error)
	GetTicket(ctx context.Context, userID int64) (*domain.Ticket, error)
	CreateTicket(ctx context.Context, userID, ticketTypeID int64) (*domain.Ticket, error)
}

// TicketsHandler manages end-user ticket endpoints.
type TicketsHandler struct {
	service TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ListTypes GET /tickets/types.
func (h *TicketsHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.service.ListTicketTypes(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketTypeResponse, 0, len(types))
	for i := range types {
		items = append(items, dto.NewTicketTypeResponse(&types[i]))
	}
	return c.JSON(items)
}

// GetTicket GET /tickets.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), userID, req.TicketTypeID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}
