package reassign_table

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
	"github.com/m04kA/SMC-TableBookingService/internal/service/notify"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
	"github.com/m04kA/SMC-TableBookingService/pkg/txmanager"
)

// UseCase пересадка брони: время не меняется, проверяется только новый стол
type UseCase struct {
	reservationRepo ReservationRepository
	engine          ConflictChecker
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	logger          Logger
}

func NewUseCase(
	reservationRepo ReservationRepository,
	engine ConflictChecker,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		engine:          engine,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		logger:          logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReassignTable: reservation id=%d to table id=%d", req.ReservationID, req.TableID)

	if req.ReservationID <= 0 || req.TableID <= 0 {
		uc.logger.Warn("ReassignTable: invalid ids reservation=%d, table=%d", req.ReservationID, req.TableID)
		return nil, fmt.Errorf("%w: reservationID and tableID must be positive", ErrInvalidInput)
	}

	var (
		result   *domain.Reservation
		previous *int64
		moved    bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронь с блокировкой
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		if !current.CanBeReassigned() {
			return fmt.Errorf("%w: status %s", ErrNotReassignable, current.Status)
		}

		previous = current.TableID
		result = current

		// 2. Тот же стол: менять нечего
		if current.TableID != nil && *current.TableID == req.TableID {
			return nil
		}

		// 3. Новый стол свободен на интервал брони
		if err := uc.engine.ReassignTable(txCtx, current, req.TableID); err != nil {
			return mapEngineError(err)
		}

		// 4. Сохраняем
		if err := uc.reservationRepo.UpdateTable(txCtx, current.ID, req.TableID); err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrOverlap), errors.Is(err, reservationRepo.ErrConcurrentUpdate):
				return fmt.Errorf("%w: %v", ErrConflict, err)
			case errors.Is(err, reservationRepo.ErrReservationNotFound):
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to update table: %v", ErrInternal, err)
		}

		result, err = uc.reservationRepo.GetByID(txCtx, current.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload reservation: %v", ErrInternal, err)
		}
		moved = true
		return nil
	})
	if err != nil {
		return nil, uc.handleTxError(err)
	}

	if !moved {
		uc.logger.Info("ReassignTable: reservation id=%d already at table id=%d", req.ReservationID, req.TableID)
		return &Response{Reservation: result, PreviousTableID: previous}, nil
	}

	uc.logger.Info("ReassignTable: reservation id=%d moved from table %v to %d",
		result.ID, ptr.Value(previous), req.TableID)

	uc.notifier.Committed(ctx, notify.Change{
		Kind:          notifications.EventTableReassigned,
		Reservation:   result,
		PreviousTable: previous,
	})

	return &Response{Reservation: result, PreviousTableID: previous}, nil
}

func (uc *UseCase) handleTxError(err error) error {
	if errors.Is(err, txmanager.ErrSerialization) {
		err = fmt.Errorf("%w: %v", ErrConflict, err)
	}

	switch {
	case errors.Is(err, ErrConflict):
		uc.metrics.ReservationConflict("reassign")
		uc.logger.Warn("ReassignTable: %v", err)
	case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrNotReassignable),
		errors.Is(err, ErrInvalidInput), errors.Is(err, ErrTableNotFound), errors.Is(err, ErrTableUnsuitable):
		uc.logger.Warn("ReassignTable: %v", err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("ReassignTable: %v", err)
	default:
		uc.logger.Error("ReassignTable: transaction failed: %v", err)
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
