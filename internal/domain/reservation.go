package domain

import "time"

// ReservationStatus статус бронирования стола
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusSeated    ReservationStatus = "seated"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no-show"
)

func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// OccupiesTable true для статусов, которые держат стол
func (s ReservationStatus) OccupiesTable() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated:
		return true
	}
	return false
}

// allowedTransitions допустимые переходы жизненного цикла
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusSeated, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusSeated, StatusCancelled, StatusNoShow},
	StatusSeated:    {StatusCompleted},
}

// Reservation бронирование стола
type Reservation struct {
	ID              int64
	CustomerID      int64
	CustomerName    *string // Денормализовано из справочника клиентов
	TableID         *int64  // nil = стол ещё не назначен
	DateTime        time.Time
	DurationMinutes int
	PartySize       int
	Status          ReservationStatus
	Notes           *string

	ConfirmedAt *time.Time
	CheckedInAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval интервал занятости стола
func (r *Reservation) Interval() Interval {
	return NewInterval(r.DateTime, r.DurationMinutes)
}

// OccupiesTable true, если бронь назначена на стол и держит его
func (r *Reservation) OccupiesTable() bool {
	return r.TableID != nil && r.Status.OccupiesTable()
}

// CanBeEdited время, состав и стол можно менять только до посадки
func (r *Reservation) CanBeEdited() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeReassigned пересадить можно и уже сидящих гостей
func (r *Reservation) CanBeReassigned() bool {
	return r.Status.OccupiesTable()
}

func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	for _, s := range allowedTransitions[r.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// ReservationsFilter фильтр списка бронирований для персонала
type ReservationsFilter struct {
	From    *time.Time         // Начало периода (опционально)
	To      *time.Time         // Конец периода, не включая (опционально)
	Status  *ReservationStatus // Статус (опционально)
	TableID *int64             // Стол (опционально)
}

// OverlapFilter выборка броней, пересекающих интервал
type OverlapFilter struct {
	TableID   *int64 // nil = по всем столам
	Start     time.Time
	End       time.Time
	Statuses  []ReservationStatus
	ExcludeID *int64
}
