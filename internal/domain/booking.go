package domain

import "time"

// Booking is a user's reservation of a room.
type Booking struct {
	ID        int64
	UserID    int64
	RoomID    int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Room is populated when the booking is read with its room.
	Room *Room
}
