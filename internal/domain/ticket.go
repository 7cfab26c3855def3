package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
)

// TicketType is immutable reference data describing ticket entitlements.
type TicketType struct {
	ID            int64
	Name          string
	Price         int64
	IsRemote      bool
	IncludesHotel bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Ticket is an admission record tied to an enrollment.
type Ticket struct {
	ID           int64
	TicketTypeID int64
	EnrollmentID int64
	Status       TicketStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// TicketType is populated by queries that join the ticket type.
	TicketType *TicketType
}

// IsPaid reports whether the ticket reached the PAID state.
func (t *Ticket) IsPaid() bool {
	return t.Status == TicketStatusPaid
}

// GrantsLodging reports whether the ticket type is in-person and hotel-inclusive.
func (tt *TicketType) GrantsLodging() bool {
	return !tt.IsRemote && tt.IncludesHotel
}
