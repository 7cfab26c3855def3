package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/lodging-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	TicketTypeID int64 `json:"ticketTypeId"`
}

func (req *CreateTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TicketTypeID, validation.Required, validation.Min(1)),
	)
}

// TicketTypeResponse describes a purchasable ticket type.
type TicketTypeResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Price         int64     `json:"price"`
	IsRemote      bool      `json:"isRemote"`
	IncludesHotel bool      `json:"includesHotel"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TicketResponse describes the caller's ticket.
type TicketResponse struct {
	ID           int64               `json:"id"`
	Status       domain.TicketStatus `json:"status"`
	TicketTypeID int64               `json:"ticketTypeId"`
	EnrollmentID int64               `json:"enrollmentId"`
	TicketType   *TicketTypeResponse `json:"TicketType,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func NewTicketTypeResponse(tt *domain.TicketType) TicketTypeResponse {
	return TicketTypeResponse{
		ID:            tt.ID,
		Name:          tt.Name,
		Price:         tt.Price,
		IsRemote:      tt.IsRemote,
		IncludesHotel: tt.IncludesHotel,
		CreatedAt:     tt.CreatedAt,
		UpdatedAt:     tt.UpdatedAt,
	}
}

func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:           ticket.ID,
		Status:       ticket.Status,
		TicketTypeID: ticket.TicketTypeID,
		EnrollmentID: ticket.EnrollmentID,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
	if ticket.TicketType != nil {
		tt := NewTicketTypeResponse(ticket.TicketType)
		resp.TicketType = &tt
	}
	return resp
}
