package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-TableBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createReservation.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, nopLogger{})

	start := time.Date(2026, 10, 20, 19, 0, 0, 0, time.UTC)
	location := domain.LocationTerraceSeaView

	uc.On("Execute", mock.Anything, &createReservation.Request{
		CustomerID:        7,
		DateTime:          start,
		PartySize:         4,
		AutoAssign:        true,
		PreferredLocation: &location,
		Notes:             ptr.Ptr("у окна"),
	}).Return(&createReservation.Response{
		Reservation: &domain.Reservation{
			ID:              100,
			CustomerID:      7,
			TableID:         ptr.Ptr(int64(5)),
			DateTime:        start,
			DurationMinutes: 120,
			PartySize:       4,
			Status:          domain.StatusPending,
		},
		Assignment: "auto",
	}, nil)

	rec := post(h, `{"customerId":7,"dateTime":"2026-10-20T19:00:00Z","partySize":4,"autoAssign":true,"preferredLocation":"terrace-sea-view","notes":"у окна"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body CreateReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.ReservationResponse)
	assert.Equal(t, int64(100), body.ID)
	assert.Equal(t, "auto", body.Assignment)
	assert.Equal(t, "pending", body.Status)
	assert.Equal(t, start.Add(2*time.Hour), body.EndTime)
	uc.AssertExpectations(t)
}

func TestHandle_BadRequestBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "unknown field", body: `{"customerId":1,"dateTime":"2026-10-20T19:00:00Z","partySize":2,"vip":true}`},
		{name: "bad dateTime", body: `{"customerId":1,"dateTime":"20.10.2026 19:00","partySize":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			rec := post(NewHandler(uc, nopLogger{}), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: createReservation.ErrConflict, wantStatus: http.StatusConflict},
		{err: createReservation.ErrNoTableAvailable, wantStatus: http.StatusConflict},
		{err: createReservation.ErrCustomerNotFound, wantStatus: http.StatusNotFound},
		{err: createReservation.ErrTableNotFound, wantStatus: http.StatusNotFound},
		{err: createReservation.ErrTableUnsuitable, wantStatus: http.StatusBadRequest},
		{err: createReservation.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{err: createReservation.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: createReservation.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: details", tt.err))

			rec := post(NewHandler(uc, nopLogger{}), `{"customerId":1,"dateTime":"2026-10-20T19:00:00Z","partySize":2,"tableId":5}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
