package check_availability

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
)

type AvailabilityEngine interface {
	CheckAvailability(ctx context.Context, req availability.CheckRequest) (*availability.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
