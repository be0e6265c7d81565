package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// Request правка брони персоналом. Меняются только переданные поля
type Request struct {
	ReservationID   int64
	DateTime        *time.Time
	DurationMinutes *int
	PartySize       *int
	TableID         *int64
	Notes           *string
}

// Response бронь после правки
type Response struct {
	Reservation *domain.Reservation
}

func (r *Request) changesSchedule() bool {
	return r.DateTime != nil || r.DurationMinutes != nil
}
