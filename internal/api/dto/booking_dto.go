package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// BookingRequest carries the target room. RoomID stays raw so that an
// absent or non-numeric value can be told apart from a malformed body.
type BookingRequest struct {
	RoomID json.RawMessage `json:"roomId"`
}

// RoomIDValue returns the requested room id, or 0 when the value is absent
// or not an integral number. Numeric strings such as "5" are accepted.
func (req *BookingRequest) RoomIDValue() int64 {
	if len(req.RoomID) == 0 {
		return 0
	}
	var raw any
	if err := json.Unmarshal(req.RoomID, &raw); err != nil {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return parseRoomID(string(req.RoomID))
	case string:
		return parseRoomID(strings.TrimSpace(v))
	default:
		return 0
	}
}

func parseRoomID(s string) int64 {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n != math.Trunc(n) {
		return 0
	}
	// float64(MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if n >= math.MaxInt64 || n < math.MinInt64 {
		return 0
	}
	return int64(n)
}

// BookingIDResponse is returned by booking mutations.
type BookingIDResponse struct {
	BookingID int64 `json:"bookingId"`
}

// BookingResponse is the caller's booking with its room.
type BookingResponse struct {
	ID   int64         `json:"id"`
	Room *RoomResponse `json:"Room"`
}

func NewBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{ID: b.ID}
	if b.Room != nil {
		room := NewRoomResponse(b.Room)
		resp.Room = &room
	}
	return resp
}
