package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// TableRepository справочник столов
type TableRepository interface {
	// ListActive активные столы вместимостью от minCapacity, опционально в зоне location
	ListActive(ctx context.Context, minCapacity *int, location *domain.Location) ([]*domain.Table, error)
	// GetByID внутри транзакции блокирует строку стола
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
}

// ReservationRepository журнал бронирований
type ReservationRepository interface {
	FindOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error)
}

// PolicyProvider текущая политика бронирования (с дефолтами, если не сохранена)
type PolicyProvider interface {
	Get(ctx context.Context) (*domain.BookingPolicy, error)
}

// Cache кеш снимков доступности
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
