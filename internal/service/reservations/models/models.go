package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// ReservationResponse бронь в ответах API
type ReservationResponse struct {
	ID              int64      `json:"id"`
	CustomerID      int64      `json:"customerId"`
	CustomerName    *string    `json:"customerName,omitempty"`
	TableID         *int64     `json:"tableId,omitempty"`
	DateTime        time.Time  `json:"dateTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	PartySize       int        `json:"partySize"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmedAt,omitempty"`
	CheckedInAt     *time.Time `json:"checkedInAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// ListReservationsRequest фильтр списка броней для персонала
type ListReservationsRequest struct {
	Date    *time.Time // День в часовом поясе ресторана (опционально)
	Status  *string
	TableID *int64
}

// ChangeStatusRequest смена статуса брони персоналом
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}
	return &ReservationResponse{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		TableID:         r.TableID,
		DateTime:        r.DateTime,
		EndTime:         r.Interval().End,
		DurationMinutes: r.DurationMinutes,
		PartySize:       r.PartySize,
		Status:          string(r.Status),
		Notes:           r.Notes,
		ConfirmedAt:     r.ConfirmedAt,
		CheckedInAt:     r.CheckedInAt,
		CompletedAt:     r.CompletedAt,
		CancelledAt:     r.CancelledAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]*ReservationResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, FromDomainReservation(r))
	}
	return resp
}

// ToDomainReservationStatus проверяет строковый статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return status, nil
}

// ToDomainFilter дата превращается в полуоткрытый интервал суток
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	var filter domain.ReservationsFilter

	if r.Date != nil {
		y, m, d := r.Date.Date()
		from := time.Date(y, m, d, 0, 0, 0, 0, r.Date.Location())
		to := from.AddDate(0, 0, 1)
		filter.From = &from
		filter.To = &to
	}
	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	filter.TableID = r.TableID

	return filter, nil
}
