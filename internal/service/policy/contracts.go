package policy

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// PolicyRepository хранилище политики бронирования
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.BookingPolicy, error)
	Upsert(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
