package customerservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "secret", time.Second, logger.NewNop())
}

func TestGetCustomer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/customers/42", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get(serviceTokenHeader))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"first_name":"Анна","last_name":"Петрова"}`))
	})

	customer, err := c.GetCustomer(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), customer.ID)
	assert.Equal(t, "Анна Петрова", customer.DisplayName())
}

func TestGetCustomer_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetCustomerWithGracefulDegradation(context.Background(), 7)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestGetCustomer_Degraded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetCustomerWithGracefulDegradation(context.Background(), 7)
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.NotErrorIs(t, err, ErrCustomerNotFound)
}

func TestGetCustomer_BadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := c.GetCustomer(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
