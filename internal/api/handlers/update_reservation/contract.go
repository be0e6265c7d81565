package update_reservation

import (
	"context"

	updateReservation "github.com/m04kA/SMC-TableBookingService/internal/usecase/update_reservation"
)

type UpdateReservationUseCase interface {
	Execute(ctx context.Context, req *updateReservation.Request) (*updateReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
