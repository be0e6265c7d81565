package update_table_layout

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// TableRepository интерфейс справочника столов
type TableRepository interface {
	UpdatePositions(ctx context.Context, positions []domain.TablePosition) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
