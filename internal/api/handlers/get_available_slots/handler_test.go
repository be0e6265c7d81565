package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

type mockFinder struct {
	mock.Mock
}

func (m *mockFinder) FindSlots(ctx context.Context, req availability.SlotsRequest) (*availability.SlotsResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.SlotsResult), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_Success(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	finder := new(mockFinder)
	h := NewHandler(finder, loc, nopLogger{})

	date := time.Date(2026, 10, 20, 0, 0, 0, 0, loc)
	slotStart := time.Date(2026, 10, 20, 19, 0, 0, 0, loc)
	table := &domain.Table{ID: 1, Number: 1, Capacity: 2, Location: domain.LocationBarArea, IsActive: true}

	finder.On("FindSlots", mock.Anything, availability.SlotsRequest{Date: date, PartySize: 2}).
		Return(&availability.SlotsResult{
			Date:            date,
			PartySize:       2,
			DurationMinutes: 120,
			Slots: []availability.Slot{
				{StartTime: types.TimeString("19:00"), DateTime: slotStart, AvailableTables: 1, Recommendation: table},
			},
		}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability/slots?date=2026-10-20&partySize=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body SlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-20", body.Date)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "19:00", body.Slots[0].StartTime)
	require.NotNil(t, body.Slots[0].Recommendation)
	assert.Equal(t, int64(1), body.Slots[0].Recommendation.ID)
	finder.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "invalid date format", query: "date=20.10.2026&partySize=2", wantStatus: http.StatusBadRequest},
		{name: "missing party size", query: "date=2026-10-20", wantStatus: http.StatusBadRequest},
		{name: "outside window", query: "date=2027-10-20&partySize=2", err: availability.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "validation", query: "date=2026-10-20&partySize=99", err: availability.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", query: "date=2026-10-20&partySize=2", err: availability.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := new(mockFinder)
			if tt.err != nil {
				finder.On("FindSlots", mock.Anything, mock.Anything).Return(nil, tt.err)
			}
			h := NewHandler(finder, time.UTC, nopLogger{})
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability/slots?"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
