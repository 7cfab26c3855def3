package dto

import (
	"time"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// HotelResponse is a catalogue entry.
type HotelResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomResponse describes a room and how many places are taken.
type RoomResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	HotelID   int64     `json:"hotelId"`
	Occupancy int       `json:"occupancy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HotelWithRoomsResponse is a hotel with its rooms.
type HotelWithRoomsResponse struct {
	HotelResponse
	Rooms []RoomResponse `json:"Rooms"`
}

func NewHotelResponse(h *domain.Hotel) HotelResponse {
	return HotelResponse{
		ID:        h.ID,
		Name:      h.Name,
		Image:     h.Image,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

func NewRoomResponse(r *domain.Room) RoomResponse {
	return RoomResponse{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		HotelID:   r.HotelID,
		Occupancy: r.Occupancy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewHotelWithRoomsResponse(h *domain.Hotel) HotelWithRoomsResponse {
	rooms := make([]RoomResponse, 0, len(h.Rooms))
	for i := range h.Rooms {
		rooms = append(rooms, NewRoomResponse(&h.Rooms[i]))
	}
	return HotelWithRoomsResponse{HotelResponse: NewHotelResponse(h), Rooms: rooms}
}
