package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lodging-service/internal/api/dto"
	"github.com/spec-kit/lodging-service/internal/domain"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

// HotelService is the catalogue surface the handler needs.
type HotelService interface {
	ListHotels(ctx context.Context, userID int64) ([]domain.Hotel, error)
	ListRooms(ctx context.Context, hotelID, userID int64) (*domain.Hotel, error)
}

// HotelsHandler serves the gated hotel catalogue.
type HotelsHandler struct {
	service HotelService
}

// NewHotelsHandler constructs handler.
func NewHotelsHandler(hotelService HotelService) *HotelsHandler {
	return &HotelsHandler{service: hotelService}
}

// ListHotels GET /hotels.
func (h *HotelsHandler) ListHotels(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	hotels, err := h.service.ListHotels(c.UserContext(), userID)
	if err != nil {
		return err
	}
	items := make([]dto.HotelResponse, 0, len(hotels))
	for i := range hotels {
		items = append(items, dto.NewHotelResponse(&hotels[i]))
	}
	return c.JSON(items)
}

// ListRooms GET /hotels/:hotelId.
func (h *HotelsHandler) ListRooms(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	// An id that cannot name a hotel is reported like any unknown hotel.
	hotelID, ok := parseID(c.Params("hotelId"))
	if !ok {
		return apperrors.NewNotFound("hotel", nil)
	}

	hotel, err := h.service.ListRooms(c.UserContext(), hotelID, userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewHotelWithRoomsResponse(hotel))
}
