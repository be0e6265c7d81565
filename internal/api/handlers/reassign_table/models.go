package reassign_table

import (
	"github.com/m04kA/SMC-TableBookingService/internal/service/reservations/models"
	reassignTable "github.com/m04kA/SMC-TableBookingService/internal/usecase/reassign_table"
)

// ReassignTableRequest HTTP request model
type ReassignTableRequest struct {
	TableID int64 `json:"tableId"`
}

// ReassignTableResponse HTTP response model
type ReassignTableResponse struct {
	*models.ReservationResponse
	PreviousTableID *int64 `json:"previousTableId,omitempty"`
}

func FromUseCaseResponse(resp *reassignTable.Response) *ReassignTableResponse {
	return &ReassignTableResponse{
		ReservationResponse: models.FromDomainReservation(resp.Reservation),
		PreviousTableID:     resp.PreviousTableID,
	}
}
