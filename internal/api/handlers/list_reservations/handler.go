package list_reservations

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-TableBookingService/internal/service/reservations/models"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTableID = "некорректный ID стола"
	msgInvalidStatus  = "неизвестный статус брони"
)

type Handler struct {
	service  ReservationService
	location *time.Location
	logger   Logger
}

func NewHandler(service ReservationService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/reservations?date=&status=&tableId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ListReservationsRequest

	if raw := handlers.QueryString(r, "date"); raw != nil {
		date, err := time.ParseInLocation(domain.DateFormat, *raw, h.location)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid date %q: %v", *raw, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	tableID, err := handlers.QueryInt64(r, "tableId")
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}
	req.TableID = tableID
	req.Status = handlers.QueryString(r, "status")

	list, err := h.service.List(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("GET /reservations - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Listed %d reservations", list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
