package reassign_table

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	reassignTable "github.com/m04kA/SMC-TableBookingService/internal/usecase/reassign_table"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *reassignTable.Request) (*reassignTable.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reassignTable.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/reservations/{id}/table", h.Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, &reassignTable.Request{ReservationID: 4, TableID: 8}).
		Return(&reassignTable.Response{
			Reservation: &domain.Reservation{
				ID:              4,
				TableID:         ptr.Ptr(int64(8)),
				DateTime:        time.Date(2026, 10, 20, 19, 0, 0, 0, time.UTC),
				DurationMinutes: 120,
				Status:          domain.StatusSeated,
			},
			PreviousTableID: ptr.Ptr(int64(5)),
		}, nil)

	rec := serve(NewHandler(uc, nopLogger{}), "/api/v1/reservations/4/table", `{"tableId":8}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body ReassignTableResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.TableID)
	assert.Equal(t, int64(8), *body.TableID)
	require.NotNil(t, body.PreviousTableID)
	assert.Equal(t, int64(5), *body.PreviousTableID)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: reassignTable.ErrConflict, wantStatus: http.StatusConflict},
		{err: reassignTable.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{err: reassignTable.ErrTableNotFound, wantStatus: http.StatusNotFound},
		{err: reassignTable.ErrNotReassignable, wantStatus: http.StatusBadRequest},
		{err: reassignTable.ErrTableUnsuitable, wantStatus: http.StatusBadRequest},
		{err: reassignTable.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: reassignTable.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: details", tt.err))

			rec := serve(NewHandler(uc, nopLogger{}), "/api/v1/reservations/4/table", `{"tableId":8}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
