package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingUpdated   EventType = "booking_updated"
	EventPaymentProcessed EventType = "payment_processed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	BookingID int64 `json:"booking_id"`
	RoomID    int64 `json:"room_id"`
	HotelID   int64 `json:"hotel_id"`
}

// BookingUpdatedPayload payload.
type BookingUpdatedPayload struct {
	BookingID  int64 `json:"booking_id"`
	FromRoomID int64 `json:"from_room_id"`
	ToRoomID   int64 `json:"to_room_id"`
}

// PaymentProcessedPayload payload.
type PaymentProcessedPayload struct {
	PaymentID  int64  `json:"payment_id"`
	TicketID   int64  `json:"ticket_id"`
	Value      int64  `json:"value"`
	CardIssuer string `json:"card_issuer"`
}
