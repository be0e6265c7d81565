package update_reservation

import (
	"time"

	updateReservation "github.com/m04kA/SMC-TableBookingService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model, передаются только изменяемые поля
type UpdateReservationRequest struct {
	DateTime        *string `json:"dateTime,omitempty"` // RFC3339
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	PartySize       *int    `json:"partySize,omitempty"`
	TableID         *int64  `json:"tableId,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID int64) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		ReservationID:   reservationID,
		DurationMinutes: r.DurationMinutes,
		PartySize:       r.PartySize,
		TableID:         r.TableID,
		Notes:           r.Notes,
	}
	if r.DateTime != nil {
		dateTime, err := time.Parse(time.RFC3339, *r.DateTime)
		if err != nil {
			return nil, err
		}
		req.DateTime = &dateTime
	}
	return req, nil
}
