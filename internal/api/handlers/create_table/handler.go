package create_table

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/service/tables"
	"github.com/m04kA/SMC-TableBookingService/internal/service/tables/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры стола"
	msgDuplicateNumber    = "стол с таким номером уже есть"
)

type Handler struct {
	service TableService
	logger  Logger
}

func NewHandler(service TableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/tables
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tables - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	table, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, tables.ErrDuplicateNumber):
			h.logger.Warn("POST /tables - Duplicate number: number=%d", req.Number)
			handlers.RespondConflict(w, msgDuplicateNumber)

		case errors.Is(err, tables.ErrInvalidInput):
			h.logger.Warn("POST /tables - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tables - Failed to create table: number=%d, error=%v", req.Number, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tables - Table created: table_id=%d, number=%d", table.ID, table.Number)
	handlers.RespondJSON(w, http.StatusCreated, table)
}
