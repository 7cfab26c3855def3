package domain

import "time"

// Payment records the settlement of a ticket. Immutable once created.
type Payment struct {
	ID             int64
	TicketID       int64
	Value          int64
	CardIssuer     string
	CardLastDigits string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CardData is the card information submitted with a payment.
type CardData struct {
	Issuer         string
	Number         string
	Name           string
	ExpirationDate string
	CVV            string
}

// LastDigits returns the final four digits of the card number.
func (c CardData) LastDigits() string {
	if len(c.Number) <= 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}
