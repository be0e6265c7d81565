package check_availability

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
	tableModels "github.com/m04kA/SMC-TableBookingService/internal/service/tables/models"
)

var errMissingParam = errors.New("missing required parameter")

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available         bool                                    `json:"available"`
	TotalTables       int                                     `json:"totalTables"`
	TablesByLocation  map[string][]*tableModels.TableResponse `json:"tablesByLocation"`
	Recommendations   []*tableModels.TableResponse            `json:"recommendations"`
	RequestedDateTime time.Time                               `json:"requestedDateTime"`
	PartySize         int                                     `json:"partySize"`
	DurationMinutes   int                                     `json:"durationMinutes"`
}

// parseRequest собирает запрос из query: dateTime (RFC3339) и partySize обязательны
func parseRequest(r *http.Request) (availability.CheckRequest, error) {
	var req availability.CheckRequest

	rawDateTime := handlers.QueryString(r, "dateTime")
	if rawDateTime == nil {
		return req, fmt.Errorf("%w: dateTime", errMissingParam)
	}
	dateTime, err := time.Parse(time.RFC3339, *rawDateTime)
	if err != nil {
		return req, err
	}
	req.DateTime = dateTime

	partySize, err := handlers.QueryInt(r, "partySize")
	if err != nil {
		return req, err
	}
	if partySize == nil {
		return req, fmt.Errorf("%w: partySize", errMissingParam)
	}
	req.PartySize = *partySize

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		return req, err
	}
	if duration != nil {
		req.DurationMinutes = *duration
	}

	if location := handlers.QueryString(r, "location"); location != nil {
		loc := domain.Location(*location)
		req.PreferredLocation = &loc
	}

	req.ExcludeReservationID, err = handlers.QueryInt64(r, "excludeReservationId")
	if err != nil {
		return req, err
	}

	return req, nil
}

// FromResult зоны без свободных столов в ответ не попадают
func FromResult(res *availability.Result) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		Available:         res.Available,
		TotalTables:       res.TotalTables,
		TablesByLocation:  make(map[string][]*tableModels.TableResponse, len(res.TablesByLocation)),
		Recommendations:   tableModels.FromDomainTableList(res.Recommendations),
		RequestedDateTime: res.RequestedDateTime,
		PartySize:         res.PartySize,
		DurationMinutes:   res.DurationMinutes,
	}
	for location, list := range res.TablesByLocation {
		resp.TablesByLocation[string(location)] = tableModels.FromDomainTableList(list)
	}
	return resp
}
