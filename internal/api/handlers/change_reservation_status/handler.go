package change_reservation_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-TableBookingService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронь не найдена"
	msgInvalidStatus        = "неизвестный статус брони"
	msgInvalidTransition    = "переход в этот статус недопустим"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservation, err := h.service.ChangeStatus(r.Context(), reservationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id}/status - Unknown status %q", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Transition rejected: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed to change status: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Status changed: reservation_id=%d, status=%s", reservationID, reservation.Status)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
