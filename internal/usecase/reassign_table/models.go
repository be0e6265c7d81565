package reassign_table

import "github.com/m04kA/SMC-TableBookingService/internal/domain"

// Request пересадка брони на другой стол
type Request struct {
	ReservationID int64
	TableID       int64
}

// Response бронь после пересадки
type Response struct {
	Reservation     *domain.Reservation
	PreviousTableID *int64
}
