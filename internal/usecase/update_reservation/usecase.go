package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
	"github.com/m04kA/SMC-TableBookingService/internal/service/notify"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
	"github.com/m04kA/SMC-TableBookingService/pkg/txmanager"
)

// UseCase правка времени, длительности, состава, стола и заметок брони
type UseCase struct {
	reservationRepo ReservationRepository
	engine          ConflictChecker
	policies        PolicyProvider
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

func NewUseCase(
	reservationRepo ReservationRepository,
	engine ConflictChecker,
	policies PolicyProvider,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		engine:          engine,
		policies:        policies,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute бронь перепроверяется на конфликт, исключая саму себя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: reservation id=%d", req.ReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Политика нужна только при смене времени
	var policy *domain.BookingPolicy
	if req.changesSchedule() {
		p, err := uc.policies.Get(ctx)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get booking policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		policy = p
	}

	var (
		result        *domain.Reservation
		previousTable *int64
	)

	// 3. Чтение с блокировкой, проверка и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 3.1. После посадки бронь только пересаживают или закрывают
		if !current.CanBeEdited() {
			return fmt.Errorf("%w: status %s", ErrNotEditable, current.Status)
		}
		previousTable = current.TableID

		// 3.2. Применяем изменения
		updated := *current
		if req.DateTime != nil {
			updated.DateTime = req.DateTime.In(uc.location)
		}
		if req.DurationMinutes != nil {
			updated.DurationMinutes = *req.DurationMinutes
		}
		if req.PartySize != nil {
			updated.PartySize = *req.PartySize
		}
		if req.TableID != nil {
			updated.TableID = req.TableID
		}
		if req.Notes != nil {
			updated.Notes = req.Notes
		}

		// 3.3. Новое время должно укладываться в политику
		if policy != nil {
			now := uc.timeProvider.Now().In(uc.location)
			if err := validateWindow(policy, updated.DateTime.In(uc.location), updated.DurationMinutes, now); err != nil {
				return err
			}
		}

		// 3.4. Стол проверяется на новый интервал, собственная бронь не мешает
		if updated.TableID != nil {
			err := uc.engine.AssertNoConflict(txCtx, availability.ConflictRequest{
				TableID:              *updated.TableID,
				DateTime:             updated.DateTime,
				DurationMinutes:      updated.DurationMinutes,
				PartySize:            updated.PartySize,
				ExcludeReservationID: ptr.Ptr(updated.ID),
			})
			if err != nil {
				return mapEngineError(err)
			}
		}

		// 3.5. Сохраняем
		if err := uc.reservationRepo.UpdateSchedule(txCtx, &updated); err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrOverlap), errors.Is(err, reservationRepo.ErrConcurrentUpdate):
				return fmt.Errorf("%w: %v", ErrConflict, err)
			case errors.Is(err, reservationRepo.ErrReservationNotFound):
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result, err = uc.reservationRepo.GetByID(txCtx, updated.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload reservation: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.handleTxError(err)
	}

	uc.logger.Info("UpdateReservation: reservation id=%d updated, table=%v, dateTime=%s, duration=%d",
		result.ID, ptr.Value(result.TableID), result.DateTime.Format(time.RFC3339), result.DurationMinutes)

	// 4. После фиксации: кеш доступности и событие для рассылок
	change := notify.Change{
		Kind:        notifications.EventReservationUpdated,
		Reservation: result,
	}
	if ptr.Value(previousTable) != ptr.Value(result.TableID) {
		change.PreviousTable = previousTable
	}
	uc.notifier.Committed(ctx, change)

	return &Response{Reservation: result}, nil
}

func (uc *UseCase) handleTxError(err error) error {
	if errors.Is(err, txmanager.ErrSerialization) {
		err = fmt.Errorf("%w: %v", ErrConflict, err)
	}

	switch {
	case errors.Is(err, ErrConflict):
		uc.metrics.ReservationConflict("update")
		uc.logger.Warn("UpdateReservation: %v", err)
	case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrNotEditable),
		errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrTableNotFound), errors.Is(err, ErrTableUnsuitable):
		uc.logger.Warn("UpdateReservation: %v", err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("UpdateReservation: %v", err)
	default:
		uc.logger.Error("UpdateReservation: transaction failed: %v", err)
		err = fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
	return err
}

func mapEngineError(err error) error {
	switch {
	case errors.Is(err, availability.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, availability.ErrTableNotFound):
		return fmt.Errorf("%w: %v", ErrTableNotFound, err)
	case errors.Is(err, availability.ErrTableInactive), errors.Is(err, availability.ErrCapacityExceeded):
		return fmt.Errorf("%w: %v", ErrTableUnsuitable, err)
	case errors.Is(err, availability.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: availability engine: %v", ErrInternal, err)
}
