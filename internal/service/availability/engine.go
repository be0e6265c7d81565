package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/reservation"
	tableRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/table"
	"github.com/m04kA/SMC-TableBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
)

// Engine проверка доступности столов и конфликтов бронирований
type Engine struct {
	tableRepo           TableRepository
	reservationRepo     ReservationRepository
	policies            PolicyProvider
	cache               Cache
	timeProvider        TimeProvider
	recommendationLimit int
	logger              Logger
}

func NewEngine(
	tableRepo TableRepository,
	reservationRepo ReservationRepository,
	policies PolicyProvider,
	cache Cache,
	recommendationLimit int,
	logger Logger,
) *Engine {
	if recommendationLimit <= 0 {
		recommendationLimit = domain.DefaultRecommendationLimit
	}
	return &Engine{
		tableRepo:           tableRepo,
		reservationRepo:     reservationRepo,
		policies:            policies,
		cache:               cache,
		timeProvider:        &RealTimeProvider{},
		recommendationLimit: recommendationLimit,
		logger:              logger,
	}
}

// CheckAvailability свободные столы на интервал [DateTime, DateTime+Duration).
// Операция только читает: внутри транзакции кеш не используется
func (e *Engine) CheckAvailability(ctx context.Context, req CheckRequest) (*Result, error) {
	// 1. Значения по умолчанию и валидация
	if req.DurationMinutes == 0 {
		policy, err := e.policies.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: CheckAvailability - get policy: %v", ErrInternal, err)
		}
		req.DurationMinutes = policy.DefaultDurationMinutes
	}
	if err := validateCheckRequest(&req); err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit == 0 {
		limit = e.recommendationLimit
	}

	// 2. Кеш
	useCache := !dbmetrics.IsInTransaction(ctx)
	cacheKey := checkCacheKey(&req, limit)
	if useCache {
		var cached Result
		if e.lookup(ctx, cacheKey, &cached) {
			normalizeResult(&cached, req.DateTime.Location())
			return &cached, nil
		}
	}

	interval := domain.NewInterval(req.DateTime, req.DurationMinutes)

	// 3. Активные столы, вмещающие компанию
	tables, err := e.tableRepo.ListActive(ctx, ptr.Ptr(req.PartySize), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: CheckAvailability - list tables: %v", ErrInternal, err)
	}

	// 4. Брони, держащие столы в этом интервале
	reservations, err := e.reservationRepo.FindOverlapping(ctx, domain.OverlapFilter{
		Start:     interval.Start,
		End:       interval.End,
		Statuses:  domain.OccupyingStatuses,
		ExcludeID: req.ExcludeReservationID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: CheckAvailability - find overlapping: %v", ErrInternal, err)
	}

	// 5. Свободные столы, группировка и рекомендации
	free := freeTables(tables, reservations, interval, req.PartySize, req.ExcludeReservationID)

	result := &Result{
		Available:         len(free) > 0,
		TotalTables:       len(free),
		TablesByLocation:  groupByLocation(free),
		Recommendations:   recommend(free, req.PreferredLocation, limit),
		RequestedDateTime: req.DateTime,
		PartySize:         req.PartySize,
		DurationMinutes:   req.DurationMinutes,
	}
	normalizeResult(result, req.DateTime.Location())

	if useCache {
		e.store(ctx, cacheKey, result)
	}

	return result, nil
}

// AssertNoConflict проверяет, что стол можно занять на интервал.
// Вызывается в той же сериализуемой транзакции, что и запись брони:
// стол блокируется, пересекающиеся брони читаются с блокировкой
func (e *Engine) AssertNoConflict(ctx context.Context, req ConflictRequest) error {
	// 1. Валидация
	if err := validateConflictRequest(&req); err != nil {
		return err
	}

	// 2. Стол существует, активен и вмещает компанию
	table, err := e.tableRepo.GetByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			return fmt.Errorf("%w: id=%d", ErrTableNotFound, req.TableID)
		}
		return fmt.Errorf("%w: AssertNoConflict - get table: %v", ErrInternal, err)
	}
	if !table.IsActive {
		return fmt.Errorf("%w: id=%d", ErrTableInactive, req.TableID)
	}
	if req.PartySize > 0 && table.Capacity < req.PartySize {
		return fmt.Errorf("%w: table %d seats %d, requested %d", ErrCapacityExceeded, table.Number, table.Capacity, req.PartySize)
	}

	// 3. Пересекающиеся брони на этом столе
	interval := domain.NewInterval(req.DateTime, req.DurationMinutes)

	reservations, err := e.reservationRepo.FindOverlapping(ctx, domain.OverlapFilter{
		TableID:   ptr.Ptr(req.TableID),
		Start:     interval.Start,
		End:       interval.End,
		Statuses:  domain.OccupyingStatuses,
		ExcludeID: req.ExcludeReservationID,
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrConcurrentUpdate) {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return fmt.Errorf("%w: AssertNoConflict - find overlapping: %v", ErrInternal, err)
	}

	// 4. Любое пересечение полуоткрытых интервалов - конфликт
	for _, r := range reservations {
		if r.TableID == nil || *r.TableID != req.TableID || !r.Status.OccupiesTable() {
			continue
		}
		if req.ExcludeReservationID != nil && r.ID == *req.ExcludeReservationID {
			continue
		}
		if r.Interval().Overlaps(interval) {
			return fmt.Errorf("%w: table %d is held by reservation %d from %s to %s",
				ErrConflict, table.Number, r.ID,
				r.DateTime.Format(domain.TimeFormat), r.Interval().End.Format(domain.TimeFormat))
		}
	}

	return nil
}

// ReassignTable проверка пересадки: бронь не конфликтует со своим прежним интервалом
func (e *Engine) ReassignTable(ctx context.Context, reservation *domain.Reservation, newTableID int64) error {
	return e.AssertNoConflict(ctx, ConflictRequest{
		TableID:              newTableID,
		DateTime:             reservation.DateTime,
		DurationMinutes:      reservation.DurationMinutes,
		PartySize:            reservation.PartySize,
		ExcludeReservationID: ptr.Ptr(reservation.ID),
	})
}

// normalizeResult время запроса в часовом поясе вызывающего, метки столов в UTC.
// После JSON из кеша часовой пояс теряется, без этого ответы из кеша и из БД различались бы
func normalizeResult(r *Result, loc *time.Location) {
	r.RequestedDateTime = r.RequestedDateTime.In(loc)
	for _, tables := range r.TablesByLocation {
		normalizeTables(tables)
	}
	normalizeTables(r.Recommendations)
}

func normalizeSlotsResult(r *SlotsResult, loc *time.Location) {
	r.Date = r.Date.In(loc)
	for i := range r.Slots {
		r.Slots[i].DateTime = r.Slots[i].DateTime.In(loc)
		if r.Slots[i].Recommendation != nil {
			normalizeTables([]*domain.Table{r.Slots[i].Recommendation})
		}
	}
}

func normalizeTables(tables []*domain.Table) {
	for _, t := range tables {
		t.CreatedAt = t.CreatedAt.UTC()
		t.UpdatedAt = t.UpdatedAt.UTC()
	}
}

func (e *Engine) lookup(ctx context.Context, key string, dest interface{}) bool {
	hit, err := e.cache.Get(ctx, key, dest)
	if err != nil {
		e.logger.Warn("Availability cache read failed, key=%s: %v", key, err)
		return false
	}
	return hit
}

func (e *Engine) store(ctx context.Context, key string, value interface{}) {
	if err := e.cache.Set(ctx, key, value); err != nil {
		e.logger.Warn("Availability cache write failed, key=%s: %v", key, err)
	}
}

func checkCacheKey(req *CheckRequest, limit int) string {
	location := ""
	if req.PreferredLocation != nil {
		location = string(*req.PreferredLocation)
	}
	exclude := int64(0)
	if req.ExcludeReservationID != nil {
		exclude = *req.ExcludeReservationID
	}
	return fmt.Sprintf("check|%d|%d|%d|%s|%d|%d",
		req.DateTime.Unix(), req.PartySize, req.DurationMinutes, location, exclude, limit)
}
