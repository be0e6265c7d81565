package list_tables

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/service/tables"
	"github.com/m04kA/SMC-TableBookingService/internal/service/tables/models"
)

const (
	msgInvalidQuery = "некорректные параметры фильтра столов"
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

// Handle GET /api/v1/tables?location=&minCapacity=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	minCapacity, err := handlers.QueryInt(r, "minCapacity")
	if err != nil {
		h.logger.Warn("GET /tables - Invalid minCapacity: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	includeInactive, err := handlers.QueryBool(r, "includeInactive")
	if err != nil {
		h.logger.Warn("GET /tables - Invalid includeInactive: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.List(r.Context(), &models.ListTablesRequest{
		Location:        handlers.QueryString(r, "location"),
		MinCapacity:     minCapacity,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		switch {
		case errors.Is(err, tables.ErrInvalidInput):
			h.logger.Warn("GET /tables - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /tables - Failed to list tables: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tables - Listed %d tables", list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
