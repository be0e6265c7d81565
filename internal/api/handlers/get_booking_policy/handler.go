package get_booking_policy

import (
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	policy, err := h.service.GetPolicy(r.Context())
	if err != nil {
		h.logger.Error("GET /booking-policy - Failed to get policy: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /booking-policy - Policy retrieved: is_default=%t", policy.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, policy)
}
