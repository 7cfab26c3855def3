package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// CardDataRequest is the card submitted with a payment.
type CardDataRequest struct {
	Issuer         string `json:"issuer"`
	Number         string `json:"number"`
	Name           string `json:"name"`
	ExpirationDate string `json:"expirationDate"`
	CVV            string `json:"cvv"`
}

func (req CardDataRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Issuer, validation.Required),
		validation.Field(&req.Number, validation.Required, is.Digit, validation.Length(13, 19)),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.ExpirationDate, validation.Required),
		validation.Field(&req.CVV, validation.Required, is.Digit, validation.Length(3, 4)),
	)
}

// ProcessPaymentRequest payload.
type ProcessPaymentRequest struct {
	TicketID int64           `json:"ticketId"`
	CardData CardDataRequest `json:"cardData"`
}

func (req *ProcessPaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TicketID, validation.Required, validation.Min(1)),
		validation.Field(&req.CardData),
	)
}

// Card converts the request into the domain card representation.
func (req *ProcessPaymentRequest) Card() domain.CardData {
	return domain.CardData{
		Issuer:         req.CardData.Issuer,
		Number:         req.CardData.Number,
		Name:           req.CardData.Name,
		ExpirationDate: req.CardData.ExpirationDate,
		CVV:            req.CardData.CVV,
	}
}

// PaymentResponse describes a settled ticket.
type PaymentResponse struct {
	ID             int64     `json:"id"`
	TicketID       int64     `json:"ticketId"`
	Value          int64     `json:"value"`
	CardIssuer     string    `json:"cardIssuer"`
	CardLastDigits string    `json:"cardLastDigits"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		TicketID:       p.TicketID,
		Value:          p.Value,
		CardIssuer:     p.CardIssuer,
		CardLastDigits: p.CardLastDigits,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
