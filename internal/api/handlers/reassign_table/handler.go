package reassign_table

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	reassignTable "github.com/m04kA/SMC-TableBookingService/internal/usecase/reassign_table"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректный ID стола"
	msgNotFound             = "бронь не найдена"
	msgNotReassignable      = "бронь уже не занимает стол"
	msgTableNotFound        = "стол не найден"
	msgTableUnsuitable      = "стол не подходит для этой компании"
	msgConflict             = "стол уже забронирован на это время"
)

type Handler struct {
	useCase ReassignTableUseCase
	logger  Logger
}

func NewHandler(useCase ReassignTableUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{id}/table
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/table - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req ReassignTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/table - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &reassignTable.Request{
		ReservationID: reservationID,
		TableID:       req.TableID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reassignTable.ErrConflict):
			h.logger.Warn("PATCH /reservations/{id}/table - Table conflict: reservation_id=%d, table_id=%d", reservationID, req.TableID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, reassignTable.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/table - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reassignTable.ErrTableNotFound):
			h.logger.Warn("PATCH /reservations/{id}/table - Table not found: table_id=%d", req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, reassignTable.ErrNotReassignable):
			h.logger.Warn("PATCH /reservations/{id}/table - Not reassignable: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgNotReassignable)

		case errors.Is(err, reassignTable.ErrTableUnsuitable):
			h.logger.Warn("PATCH /reservations/{id}/table - Table unsuitable: table_id=%d", req.TableID)
			handlers.RespondBadRequest(w, msgTableUnsuitable)

		case errors.Is(err, reassignTable.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/table - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id}/table - Failed to reassign: reservation_id=%d, table_id=%d, error=%v",
				reservationID, req.TableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/table - Reservation moved: reservation_id=%d, table_id=%d", reservationID, req.TableID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
