package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/customerservice"
	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
	"github.com/m04kA/SMC-TableBookingService/internal/service/notify"
)

// ReservationRepository интерфейс журнала бронирований
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
}

// AvailabilityEngine подбор стола и проверка конфликта
type AvailabilityEngine interface {
	CheckAvailability(ctx context.Context, req availability.CheckRequest) (*availability.Result, error)
	AssertNoConflict(ctx context.Context, req availability.ConflictRequest) error
}

// PolicyProvider текущая политика бронирования
type PolicyProvider interface {
	Get(ctx context.Context) (*domain.BookingPolicy, error)
}

// CustomerServiceClient интерфейс клиента для CustomerService
type CustomerServiceClient interface {
	GetCustomerWithGracefulDegradation(ctx context.Context, customerID int64) (*customerservice.Customer, error)
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
	ReservationCreated(assignment string)
	ReservationConflict(operation string)
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

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
