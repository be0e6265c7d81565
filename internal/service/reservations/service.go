package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TableBookingService/internal/service/notify"
	"github.com/m04kA/SMC-TableBookingService/internal/service/reservations/models"
)

// Service чтение журнала бронирований и жизненный цикл брони
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронь по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	r, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(r), nil
}

// List брони с фильтром по дню, статусу и столу
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}

// ChangeStatus переводит бронь по жизненному циклу.
// Отметка времени статуса (confirmedAt, checkedInAt, ...) ставится один раз
func (s *Service) ChangeStatus(ctx context.Context, id int64, req *models.ChangeStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("ChangeStatus: reservation id=%d to status=%s", id, req.Status)

	// 1. Валидация статуса
	next, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("ChangeStatus: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	var (
		updated  *domain.Reservation
		previous domain.ReservationStatus
	)

	// 2. Чтение с блокировкой, проверка перехода и запись в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: ChangeStatus - get reservation: %v", ErrInternal, err)
		}

		if !current.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
		}
		previous = current.Status

		if err := s.reservationRepo.UpdateStatus(txCtx, id, next, s.timeProvider.Now()); err != nil {
			return fmt.Errorf("%w: ChangeStatus - update status: %v", ErrInternal, err)
		}

		updated, err = s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: ChangeStatus - reload reservation: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			s.logger.Warn("ChangeStatus: reservation id=%d not found", id)
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("ChangeStatus: reservation id=%d: %v", id, err)
		default:
			s.logger.Error("ChangeStatus: reservation id=%d: %v", id, err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: ChangeStatus - transaction: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	// 3. После фиксации: кеш доступности и событие для рассылок
	s.notifier.Committed(ctx, notify.Change{
		Kind:           notifications.EventStatusChanged,
		Reservation:    updated,
		PreviousStatus: &previous,
	})

	s.logger.Info("ChangeStatus: reservation id=%d moved %s -> %s", id, previous, next)
	return models.FromDomainReservation(updated), nil
}
