package update_table_layout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	updateTableLayout "github.com/m04kA/SMC-TableBookingService/internal/usecase/update_table_layout"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные позиции столов"
	msgTableNotFound      = "стол из схемы не найден, схема не сохранена"
)

type Handler struct {
	useCase UpdateTableLayoutUseCase
	logger  Logger
}

func NewHandler(useCase UpdateTableLayoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/tables/layout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateLayoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tables/layout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, updateTableLayout.ErrTableNotFound):
			h.logger.Warn("PUT /tables/layout - Unknown table in batch: %v", err)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, updateTableLayout.ErrInvalidInput):
			h.logger.Warn("PUT /tables/layout - Invalid batch: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /tables/layout - Failed to update layout: positions=%d, error=%v", len(req.Positions), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tables/layout - Layout updated: updated=%d, collisions=%d", result.Updated, len(result.Collisions))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
