package change_reservation_status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-TableBookingService/internal/service/reservations/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ChangeStatus(ctx context.Context, id int64, req *models.ChangeStatusRequest) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// serve прогоняет запрос через роутер, чтобы заполнились mux.Vars
func serve(h *Handler, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/reservations/{id}/status", h.Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := new(mockService)
	svc.On("ChangeStatus", mock.Anything, int64(12), &models.ChangeStatusRequest{Status: "seated"}).
		Return(&models.ReservationResponse{ID: 12, Status: "seated"}, nil)

	rec := serve(NewHandler(svc, nopLogger{}), "/api/v1/reservations/12/status", `{"status":"seated"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "seated", body.Status)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad id", path: "/api/v1/reservations/abc/status", body: `{"status":"seated"}`, wantStatus: http.StatusBadRequest},
		{name: "bad body", path: "/api/v1/reservations/1/status", body: `{"state":"seated"}`, wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/api/v1/reservations/1/status", body: `{"status":"seated"}`, err: reservations.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "unknown status", path: "/api/v1/reservations/1/status", body: `{"status":"eaten"}`, err: reservations.ErrInvalidStatus, wantStatus: http.StatusBadRequest},
		{name: "illegal transition", path: "/api/v1/reservations/1/status", body: `{"status":"completed"}`, err: reservations.ErrInvalidTransition, wantStatus: http.StatusBadRequest},
		{name: "internal", path: "/api/v1/reservations/1/status", body: `{"status":"seated"}`, err: reservations.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.err != nil {
				svc.On("ChangeStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: details", tt.err))
			}

			rec := serve(NewHandler(svc, nopLogger{}), tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
