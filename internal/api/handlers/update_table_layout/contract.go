package update_table_layout

import (
	"context"

	updateTableLayout "github.com/m04kA/SMC-TableBookingService/internal/usecase/update_table_layout"
)

type UpdateTableLayoutUseCase interface {
	Execute(ctx context.Context, req *updateTableLayout.Request) (*updateTableLayout.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
