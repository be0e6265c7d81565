package update_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/service/reservations/models"
	updateReservation "github.com/m04kA/SMC-TableBookingService/internal/usecase/update_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректное время брони, ожидается RFC3339"
	msgInvalidInput         = "некорректные данные бронирования"
	msgInvalidDate          = "на это время нельзя забронировать стол"
	msgNotFound             = "бронь не найдена"
	msgNotEditable          = "бронь больше нельзя изменить"
	msgTableNotFound        = "стол не найден"
	msgTableUnsuitable      = "стол не подходит для этой компании"
	msgConflict             = "стол уже забронирован на это время"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid dateTime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrConflict):
			h.logger.Warn("PUT /reservations/{id} - Table conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrTableNotFound):
			h.logger.Warn("PUT /reservations/{id} - Table not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, updateReservation.ErrNotEditable):
			h.logger.Warn("PUT /reservations/{id} - Reservation not editable: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgNotEditable)

		case errors.Is(err, updateReservation.ErrTableUnsuitable):
			h.logger.Warn("PUT /reservations/{id} - Table unsuitable: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgTableUnsuitable)

		case errors.Is(err, updateReservation.ErrInvalidDate):
			h.logger.Warn("PUT /reservations/{id} - Time not bookable: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(result.Reservation))
}
