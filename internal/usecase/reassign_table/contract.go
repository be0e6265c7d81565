package reassign_table

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/service/notify"
)

// ReservationRepository интерфейс журнала бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateTable(ctx context.Context, id int64, tableID int64) error
}

// ConflictChecker проверка нового стола с исключением самой брони
type ConflictChecker interface {
	ReassignTable(ctx context.Context, reservation *domain.Reservation, newTableID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier действия после фиксации брони
type Notifier interface {
	Committed(ctx context.Context, change notify.Change)
}

// Metrics бизнес-счётчики (*metrics.Metrics)
type Metrics interface {
	ReservationConflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
