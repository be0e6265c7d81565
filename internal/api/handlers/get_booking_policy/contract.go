package get_booking_policy

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/service/policy/models"
)

type PolicyService interface {
	GetPolicy(ctx context.Context) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
