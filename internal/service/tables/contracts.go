package tables

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// TableRepository интерфейс справочника столов
type TableRepository interface {
	Create(ctx context.Context, t *domain.Table) (*domain.Table, error)
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
	List(ctx context.Context, filter domain.TableFilter) ([]*domain.Table, error)
	Update(ctx context.Context, t *domain.Table) (*domain.Table, error)
}

// Invalidator сброс снимков доступности после изменения зала
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
