package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// EventKind тип события журнала бронирований
type EventKind string

const (
	EventReservationCreated EventKind = "reservation.created"
	EventReservationUpdated EventKind = "reservation.updated"
	EventTableReassigned    EventKind = "reservation.table_reassigned"
	EventStatusChanged      EventKind = "reservation.status_changed"
)

// Event сообщение для сервиса рассылок (письма и SMS гостям)
type Event struct {
	ID              string                    `json:"id"`
	Kind            EventKind                 `json:"kind"`
	OccurredAt      time.Time                 `json:"occurred_at"`
	ReservationID   int64                     `json:"reservation_id"`
	CustomerID      int64                     `json:"customer_id"`
	CustomerName    *string                   `json:"customer_name,omitempty"`
	TableID         *int64                    `json:"table_id,omitempty"`
	PreviousTableID *int64                    `json:"previous_table_id,omitempty"`
	DateTime        time.Time                 `json:"date_time"`
	DurationMinutes int                       `json:"duration_minutes"`
	PartySize       int                       `json:"party_size"`
	Status          domain.ReservationStatus  `json:"status"`
	PreviousStatus  *domain.ReservationStatus `json:"previous_status,omitempty"`
}

// NewEvent снимок брони на момент события
func NewEvent(kind EventKind, r *domain.Reservation, occurredAt time.Time) Event {
	return Event{
		ID:              uuid.NewString(),
		Kind:            kind,
		OccurredAt:      occurredAt.UTC(),
		ReservationID:   r.ID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		TableID:         r.TableID,
		DateTime:        r.DateTime,
		DurationMinutes: r.DurationMinutes,
		PartySize:       r.PartySize,
		Status:          r.Status,
	}
}
