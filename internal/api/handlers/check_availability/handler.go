package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
)

const (
	msgInvalidQuery = "некорректные параметры запроса: нужны dateTime (RFC3339) и partySize"
	msgInvalidInput = "некорректные параметры проверки доступности"
)

type Handler struct {
	engine AvailabilityEngine
	logger Logger
}

func NewHandler(engine AvailabilityEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.engine.CheckAvailability(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability - Failed to check availability: date_time=%s, party_size=%d, error=%v",
				req.DateTime, req.PartySize, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Checked: date_time=%s, party_size=%d, available=%t",
		req.DateTime, req.PartySize, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}
