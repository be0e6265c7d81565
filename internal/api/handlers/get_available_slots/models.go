package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
	tableModels "github.com/m04kA/SMC-TableBookingService/internal/service/tables/models"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date            string          `json:"date"` // "2026-10-20"
	PartySize       int             `json:"partySize"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []*SlotResponse `json:"slots"`
}

type SlotResponse struct {
	StartTime       string                     `json:"startTime"` // "19:30"
	DateTime        time.Time                  `json:"dateTime"`
	AvailableTables int                        `json:"availableTables"`
	Recommendation  *tableModels.TableResponse `json:"recommendation,omitempty"`
}

// parseRequest дата трактуется в часовом поясе ресторана
func parseRequest(r *http.Request, location *time.Location) (availability.SlotsRequest, error) {
	var req availability.SlotsRequest

	rawDate := handlers.QueryString(r, "date")
	if rawDate == nil {
		return req, errors.New("missing required parameter: date")
	}
	date, err := time.ParseInLocation(domain.DateFormat, *rawDate, location)
	if err != nil {
		return req, err
	}
	req.Date = date

	partySize, err := handlers.QueryInt(r, "partySize")
	if err != nil {
		return req, err
	}
	if partySize == nil {
		return req, errors.New("missing required parameter: partySize")
	}
	req.PartySize = *partySize

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		return req, err
	}
	if duration != nil {
		req.DurationMinutes = *duration
	}

	if raw := handlers.QueryString(r, "location"); raw != nil {
		loc := domain.Location(*raw)
		req.PreferredLocation = &loc
	}

	return req, nil
}

func FromResult(res *availability.SlotsResult) *SlotsResponse {
	resp := &SlotsResponse{
		Date:            res.Date.Format(domain.DateFormat),
		PartySize:       res.PartySize,
		DurationMinutes: res.DurationMinutes,
		Slots:           make([]*SlotResponse, 0, len(res.Slots)),
	}
	for _, slot := range res.Slots {
		resp.Slots = append(resp.Slots, &SlotResponse{
			StartTime:       slot.StartTime.String(),
			DateTime:        slot.DateTime,
			AvailableTables: slot.AvailableTables,
			Recommendation:  tableModels.FromDomainTable(slot.Recommendation),
		})
	}
	return resp
}
