package customerservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const serviceTokenHeader = "X-Service-Token"

// Client клиент справочника клиентов ресторана
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCustomer получает клиента по ID
func (c *Client) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	url := fmt.Sprintf("%s/internal/customers/%d", c.baseURL, customerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set(serviceTokenHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrCustomerNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var customer Customer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &customer, nil
}

// GetCustomerWithGracefulDegradation как GetCustomer, но недоступность сервиса
// превращается в ErrServiceDegraded: бронь можно принять без имени клиента
func (c *Client) GetCustomerWithGracefulDegradation(ctx context.Context, customerID int64) (*Customer, error) {
	customer, err := c.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			c.log.Warn("Customer not found: customer_id=%d", customerID)
			return nil, err
		}

		c.log.Error("CustomerService unavailable, applying graceful degradation for customer_id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: customer_id=%d, error=%v", ErrServiceDegraded, customerID, err)
	}

	return customer, nil
}
