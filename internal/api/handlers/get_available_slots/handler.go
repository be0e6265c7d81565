package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
)

const (
	msgInvalidQuery = "некорректные параметры запроса: нужны date (YYYY-MM-DD) и partySize"
	msgInvalidInput = "некорректные параметры поиска слотов"
	msgInvalidDate  = "дата вне окна бронирования"
)

type Handler struct {
	finder   SlotFinder
	location *time.Location
	logger   Logger
}

func NewHandler(finder SlotFinder, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		finder:   finder,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r, h.location)
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.finder.FindSlots(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /availability/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, availability.ErrInvalidDate):
			h.logger.Warn("GET /availability/slots - Date outside booking window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability/slots - Failed to find slots: date=%s, party_size=%d, error=%v",
				req.Date.Format("2006-01-02"), req.PartySize, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/slots - Found %d slots: date=%s, party_size=%d",
		len(result.Slots), req.Date.Format("2006-01-02"), req.PartySize)
	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}
