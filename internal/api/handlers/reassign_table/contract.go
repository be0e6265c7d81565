package reassign_table

import (
	"context"

	reassignTable "github.com/m04kA/SMC-TableBookingService/internal/usecase/reassign_table"
)

type ReassignTableUseCase interface {
	Execute(ctx context.Context, req *reassignTable.Request) (*reassignTable.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
