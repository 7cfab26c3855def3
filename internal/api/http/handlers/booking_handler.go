package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lodging-service/internal/api/dto"
	"github.com/spec-kit/lodging-service/internal/domain"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

// BookingService is the booking surface the handler needs.
type BookingService interface {
	GetBooking(ctx context.Context, userID int64) (*domain.Booking, error)
	CreateBooking(ctx context.Context, userID, roomID int64) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, userID, roomID, bookingID int64) (*domain.Booking, error)
}

// BookingHandler exposes the booking workflow.
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler constructs handler.
func NewBookingHandler(bookingService BookingService) *BookingHandler {
	return &BookingHandler{service: bookingService}
}

// GetBooking GET /booking.
func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	booking, err := h.service.GetBooking(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBookingResponse(booking))
}

// CreateBooking POST /booking.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	roomID, err := bookingRoomID(c)
	if err != nil {
		return err
	}

	booking, err := h.service.CreateBooking(c.UserContext(), userID, roomID)
	if err != nil {
		return err
	}
	return c.JSON(dto.BookingIDResponse{BookingID: booking.ID})
}

// UpdateBooking PUT /booking/:bookingId.
func (h *BookingHandler) UpdateBooking(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	roomID, err := bookingRoomID(c)
	if err != nil {
		return err
	}
	// An unparsable id matches no booking and is rejected by ownership.
	bookingID, _ := strconv.ParseInt(c.Params("bookingId"), 10, 64)

	booking, err := h.service.UpdateBooking(c.UserContext(), userID, roomID, bookingID)
	if err != nil {
		return err
	}
	return c.JSON(dto.BookingIDResponse{BookingID: booking.ID})
}

// bookingRoomID reads roomId from the body. An empty body means no room was given.
func bookingRoomID(c *fiber.Ctx) (int64, error) {
	if len(c.Body()) == 0 {
		return 0, nil
	}
	var req dto.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, apperrors.NewValidationError("invalid payload", nil)
	}
	return req.RoomIDValue(), nil
}
