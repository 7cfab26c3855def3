package domain

import "time"

// Hotel owns a flat list of rooms.
type Hotel struct {
	ID        int64
	Name      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Rooms     []Room
}

// Room belongs to a hotel. Occupancy is derived from bookings referencing the room.
type Room struct {
	ID        int64
	Name      string
	Capacity  int
	HotelID   int64
	Occupancy int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasVacancy reports whether another booking fits in the room.
func (r *Room) HasVacancy() bool {
	return r.Occupancy < r.Capacity
}

// Vacancies returns the number of free places, never negative.
func (r *Room) Vacancies() int {
	if r.Occupancy >= r.Capacity {
		return 0
	}
	return r.Capacity - r.Occupancy
}
