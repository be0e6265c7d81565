package notify

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/notifications"
)

// Change что произошло с бронью; Previous* заполняются при пересадке и смене статуса
type Change struct {
	Kind           notifications.EventKind
	Reservation    *domain.Reservation
	PreviousTable  *int64
	PreviousStatus *domain.ReservationStatus
}

// Notifier действия после фиксации записи в журнал бронирований.
// Ошибки только логируются: бронь уже сохранена
type Notifier struct {
	publisher    Publisher
	cache        Invalidator
	timeProvider TimeProvider
	logger       Logger
}

func NewNotifier(publisher Publisher, cache Invalidator, logger Logger) *Notifier {
	return &Notifier{
		publisher:    publisher,
		cache:        cache,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Committed сбрасывает кеш доступности и публикует событие
func (n *Notifier) Committed(ctx context.Context, change Change) {
	if err := n.cache.Invalidate(ctx); err != nil {
		n.logger.Warn("Notifier: failed to invalidate availability cache after %s of reservation id=%d: %v",
			change.Kind, change.Reservation.ID, err)
	}

	event := notifications.NewEvent(change.Kind, change.Reservation, n.timeProvider.Now())
	event.PreviousTableID = change.PreviousTable
	event.PreviousStatus = change.PreviousStatus

	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn("Notifier: failed to publish %s for reservation id=%d: %v",
			change.Kind, change.Reservation.ID, err)
		return
	}
	n.logger.Info("Notifier: published %s for reservation id=%d, event id=%s",
		change.Kind, change.Reservation.ID, event.ID)
}
