package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/reservation"
	customerClient "github.com/m04kA/SMC-TableBookingService/internal/integrations/customerservice"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
	"github.com/m04kA/SMC-TableBookingService/internal/service/notify"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
	"github.com/m04kA/SMC-TableBookingService/pkg/txmanager"
)

// UseCase use case для создания брони
type UseCase struct {
	reservationRepo ReservationRepository
	engine          AvailabilityEngine
	policies        PolicyProvider
	customerClient  CustomerServiceClient
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// location часовой пояс ресторана: в нём проверяются часы работы
func NewUseCase(
	reservationRepo ReservationRepository,
	engine AvailabilityEngine,
	policies PolicyProvider,
	customerClient CustomerServiceClient,
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
		customerClient:  customerClient,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони.
// Проверка конфликта и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: customer=%d, dateTime=%s, partySize=%d, duration=%d, table=%v, autoAssign=%t",
		req.CustomerID, req.DateTime.Format(time.RFC3339), req.PartySize, req.DurationMinutes, ptr.Value(req.TableID), req.AutoAssign)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Политика бронирования и длительность по умолчанию
	policy, err := uc.policies.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get booking policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = policy.DefaultDurationMinutes
	}

	// 3. Окно бронирования в часовом поясе ресторана
	start := req.DateTime.In(uc.location)
	if err := validateWindow(policy, start, duration, uc.timeProvider.Now().In(uc.location)); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 4. Клиент. Недоступность CustomerService не мешает принять бронь
	var customerName *string
	customer, err := uc.customerClient.GetCustomerWithGracefulDegradation(ctx, req.CustomerID)
	switch {
	case err == nil:
		if name := customer.DisplayName(); name != "" {
			customerName = &name
		}
	case errors.Is(err, customerClient.ErrCustomerNotFound):
		uc.logger.Warn("CreateReservation: customer id=%d not found", req.CustomerID)
		return nil, ErrCustomerNotFound
	case errors.Is(err, customerClient.ErrServiceDegraded):
		uc.logger.Warn("CreateReservation: customer id=%d not verified, CustomerService degraded", req.CustomerID)
	default:
		uc.logger.Error("CreateReservation: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	var (
		result     *domain.Reservation
		assignment = assignmentUnassigned
	)

	// 5. Выбор стола, проверка конфликта и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		tableID := req.TableID

		// 5.1. Автоподбор: лучшая рекомендация на этот интервал
		if tableID == nil && req.AutoAssign {
			snapshot, err := uc.engine.CheckAvailability(txCtx, availability.CheckRequest{
				DateTime:          start,
				PartySize:         req.PartySize,
				DurationMinutes:   duration,
				PreferredLocation: req.PreferredLocation,
				Limit:             1,
			})
			if err != nil {
				return mapEngineError(err)
			}
			if len(snapshot.Recommendations) == 0 {
				return ErrNoTableAvailable
			}
			tableID = ptr.Ptr(snapshot.Recommendations[0].ID)
			assignment = assignmentAuto
		} else if tableID != nil {
			assignment = assignmentTable
		}

		// 5.2. Стол блокируется и проверяется на пересечения
		if tableID != nil {
			err := uc.engine.AssertNoConflict(txCtx, availability.ConflictRequest{
				TableID:         *tableID,
				DateTime:        start,
				DurationMinutes: duration,
				PartySize:       req.PartySize,
			})
			if err != nil {
				return mapEngineError(err)
			}
		}

		// 5.3. Сохраняем бронь
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			CustomerID:      req.CustomerID,
			CustomerName:    customerName,
			TableID:         tableID,
			DateTime:        start,
			DurationMinutes: duration,
			PartySize:       req.PartySize,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrOverlap) || errors.Is(err, reservationRepo.ErrConcurrentUpdate) {
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, uc.handleTxError(err)
	}

	uc.metrics.ReservationCreated(assignment)
	uc.logger.Info("CreateReservation: created reservation id=%d, table=%v, assignment=%s",
		result.ID, ptr.Value(result.TableID), assignment)

	// 6. После фиксации: кеш доступности и событие для рассылок
	uc.notifier.Committed(ctx, notify.Change{
		Kind:        notifications.EventReservationCreated,
		Reservation: result,
	})

	return &Response{Reservation: result, Assignment: assignment}, nil
}

// handleTxError сбой сериализации при COMMIT тоже конфликт: параллельная запись заняла стол
func (uc *UseCase) handleTxError(err error) error {
	if errors.Is(err, txmanager.ErrSerialization) {
		err = fmt.Errorf("%w: %v", ErrConflict, err)
	}

	switch {
	case errors.Is(err, ErrConflict), errors.Is(err, ErrNoTableAvailable):
		uc.metrics.ReservationConflict("create")
		uc.logger.Warn("CreateReservation: %v", err)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrTableNotFound), errors.Is(err, ErrTableUnsuitable):
		uc.logger.Warn("CreateReservation: %v", err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateReservation: %v", err)
	default:
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		err = fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
	return err
}

// mapEngineError переводит ошибки движка доступности в ошибки use case
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
