package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
)

type SlotFinder interface {
	FindSlots(ctx context.Context, req availability.SlotsRequest) (*availability.SlotsResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
