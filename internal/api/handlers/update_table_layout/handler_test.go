package update_table_layout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	updateTableLayout "github.com/m04kA/SMC-TableBookingService/internal/usecase/update_table_layout"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *updateTableLayout.Request) (*updateTableLayout.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*updateTableLayout.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func put(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/tables/layout", strings.NewReader(body)))
	return rec
}

func TestHandle_ReportsCollisions(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, &updateTableLayout.Request{Positions: []domain.TablePosition{
		{TableID: 1, Position: domain.Position{X: 100, Y: 100}},
		{TableID: 2, Position: domain.Position{X: 130, Y: 100}},
	}}).Return(&updateTableLayout.Response{
		Updated:    2,
		Collisions: []domain.Collision{{TableA: 1, TableB: 2, Distance: 30}},
	}, nil)

	rec := put(NewHandler(uc, nopLogger{}), `{"positions":[{"tableId":1,"x":100,"y":100},{"tableId":2,"x":130,"y":100}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body UpdateLayoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Updated)
	assert.Equal(t, []CollisionItem{{TableA: 1, TableB: 2, Distance: 30}}, body.Collisions)
	uc.AssertExpectations(t)
}

func TestHandle_EmptyCollisionsSerializeAsArray(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&updateTableLayout.Response{Updated: 1}, nil)

	rec := put(NewHandler(uc, nopLogger{}), `{"positions":[{"tableId":1,"x":10,"y":10}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"collisions":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown table", err: updateTableLayout.ErrTableNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid", err: updateTableLayout.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: updateTableLayout.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: details", tt.err))

			rec := put(NewHandler(uc, nopLogger{}), `{"positions":[{"tableId":1,"x":10,"y":10}]}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
