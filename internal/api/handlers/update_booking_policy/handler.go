package update_booking_policy

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TableBookingService/internal/service/policy"
	"github.com/m04kA/SMC-TableBookingService/internal/service/policy/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPolicy      = "некорректные параметры политики бронирования"
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

// Handle PUT /api/v1/booking-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req models.UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrInvalidInput):
			h.logger.Warn("PUT /booking-policy - Invalid policy: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		default:
			h.logger.Error("PUT /booking-policy - Failed to update policy: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /booking-policy - Policy updated: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, updated)
}
