package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-TableBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerID        int64   `json:"customerId"`
	DateTime          string  `json:"dateTime"` // RFC3339, "2026-10-20T19:00:00+03:00"
	DurationMinutes   int     `json:"durationMinutes,omitempty"`
	PartySize         int     `json:"partySize"`
	TableID           *int64  `json:"tableId,omitempty"`
	AutoAssign        bool    `json:"autoAssign,omitempty"`
	PreferredLocation *string `json:"preferredLocation,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	*models.ReservationResponse
	Assignment string `json:"assignment"` // "table", "auto", "unassigned"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	dateTime, err := time.Parse(time.RFC3339, r.DateTime)
	if err != nil {
		return nil, err
	}

	req := &createReservation.Request{
		CustomerID:      r.CustomerID,
		DateTime:        dateTime,
		DurationMinutes: r.DurationMinutes,
		PartySize:       r.PartySize,
		TableID:         r.TableID,
		AutoAssign:      r.AutoAssign,
		Notes:           r.Notes,
	}
	if r.PreferredLocation != nil {
		location := domain.Location(*r.PreferredLocation)
		req.PreferredLocation = &location
	}
	return req, nil
}

func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	return &CreateReservationResponse{
		ReservationResponse: models.FromDomainReservation(resp.Reservation),
		Assignment:          resp.Assignment,
	}
}
