package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-TableBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректное время брони, ожидается RFC3339"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidDate        = "на это время нельзя забронировать стол"
	msgCustomerNotFound   = "клиент не найден"
	msgTableNotFound      = "стол не найден"
	msgTableUnsuitable    = "стол не подходит для этой компании"
	msgConflict           = "стол уже забронирован на это время"
	msgNoTableAvailable   = "нет свободных столов на это время"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid dateTime %q: %v", req.DateTime, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrConflict):
			h.logger.Warn("POST /reservations - Table conflict: customer_id=%d, table_id=%d", req.CustomerID, ptr.Value(req.TableID))
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createReservation.ErrNoTableAvailable):
			h.logger.Warn("POST /reservations - No table available: customer_id=%d, party_size=%d", req.CustomerID, req.PartySize)
			handlers.RespondConflict(w, msgNoTableAvailable)

		case errors.Is(err, createReservation.ErrCustomerNotFound):
			h.logger.Warn("POST /reservations - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createReservation.ErrTableNotFound):
			h.logger.Warn("POST /reservations - Table not found: table_id=%d", ptr.Value(req.TableID))
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createReservation.ErrTableUnsuitable):
			h.logger.Warn("POST /reservations - Table unsuitable: table_id=%d, party_size=%d", ptr.Value(req.TableID), req.PartySize)
			handlers.RespondBadRequest(w, msgTableUnsuitable)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Time not bookable: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, customer_id=%d, assignment=%s",
		result.Reservation.ID, req.CustomerID, result.Assignment)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
