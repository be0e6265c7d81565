package notify

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/integrations/notifications"
)

// Publisher отправка событий журнала бронирований
type Publisher interface {
	Publish(ctx context.Context, event notifications.Event) error
}

// Invalidator сброс снимков доступности
type Invalidator interface {
	Invalidate(ctx context.Context) error
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
