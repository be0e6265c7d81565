package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// FindSlots свободное время на дату: старты от открытия с шагом политики,
// визит должен закончиться до закрытия. Брони дня загружаются один раз,
// каждый слот оценивается тем же предикатом, что и CheckAvailability
func (e *Engine) FindSlots(ctx context.Context, req SlotsRequest) (*SlotsResult, error) {
	// 1. Валидация
	if err := validateSlotsRequest(&req); err != nil {
		return nil, err
	}

	// 2. Политика бронирования
	policy, err := e.policies.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: FindSlots - get policy: %v", ErrInternal, err)
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = policy.DefaultDurationMinutes
	}

	now := e.timeProvider.Now()
	date := startOfDay(req.Date)

	// 3. Окно предварительной записи
	if err := validateDate(date, now, policy); err != nil {
		return nil, err
	}

	useCache := !dbmetrics.IsInTransaction(ctx)
	cacheKey := slotsCacheKey(&req, date, policy, now)
	if useCache {
		var cached SlotsResult
		if e.lookup(ctx, cacheKey, &cached) {
			normalizeSlotsResult(&cached, date.Location())
			return &cached, nil
		}
	}

	result := &SlotsResult{
		Date:            date,
		PartySize:       req.PartySize,
		DurationMinutes: req.DurationMinutes,
		Slots:           []Slot{},
	}

	// 4. Кандидаты на старт
	starts, err := generateSlotStarts(policy, req.DurationMinutes, date, now)
	if err != nil {
		return nil, fmt.Errorf("%w: FindSlots - generate slots: %v", ErrInternal, err)
	}
	if len(starts) == 0 {
		return result, nil
	}

	// 5. Столы и брони на окно дня
	tables, err := e.tableRepo.ListActive(ctx, ptr.Ptr(req.PartySize), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: FindSlots - list tables: %v", ErrInternal, err)
	}

	window := domain.Interval{
		Start: starts[0].at,
		End:   starts[len(starts)-1].at.Add(time.Duration(req.DurationMinutes) * time.Minute),
	}

	reservations, err := e.reservationRepo.FindOverlapping(ctx, domain.OverlapFilter{
		Start:    window.Start,
		End:      window.End,
		Statuses: domain.OccupyingStatuses,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: FindSlots - find overlapping: %v", ErrInternal, err)
	}

	// 6. Оценка каждого слота
	for _, start := range starts {
		interval := domain.NewInterval(start.at, req.DurationMinutes)
		free := freeTables(tables, reservations, interval, req.PartySize, nil)
		if len(free) == 0 {
			continue
		}

		result.Slots = append(result.Slots, Slot{
			StartTime:       start.time,
			DateTime:        start.at,
			AvailableTables: len(free),
			Recommendation:  recommend(free, req.PreferredLocation, 1)[0],
		})
	}

	normalizeSlotsResult(result, date.Location())

	if useCache {
		e.store(ctx, cacheKey, result)
	}

	return result, nil
}

type slotStart struct {
	time types.TimeString
	at   time.Time
}

// generateSlotStarts старты от открытия до закрытия с шагом политики.
// Для сегодняшней даты отбрасываются старты раньше now + минимальное время до визита,
// для последнего дня окна записи - старты позже now + AdvanceBookingDays
func generateSlotStarts(policy *domain.BookingPolicy, durationMinutes int, date, now time.Time) ([]slotStart, error) {
	if policy.SlotStepMinutes <= 0 {
		return nil, fmt.Errorf("slot step must be positive, got %d", policy.SlotStepMinutes)
	}

	earliest := policy.EarliestBookable(now)
	latest := policy.LatestBookable(now)
	starts := make([]slotStart, 0)

	current := policy.OpeningTime
	for current.IsBefore(policy.ClosingTime) {
		end, err := current.AddMinutes(durationMinutes)
		if errors.Is(err, types.ErrOutOfDay) {
			break
		}
		if err != nil {
			return nil, err
		}
		if end.IsAfter(policy.ClosingTime) {
			break
		}

		at, err := current.OnDate(date)
		if err != nil {
			return nil, err
		}
		if policy.HasAdvanceBookingLimit() && at.After(latest) {
			break
		}
		// Сегодня: отрезаем прошедшее время и слишком поздние заявки
		if !isSameDay(date, now.In(date.Location())) || !at.Before(earliest) {
			starts = append(starts, slotStart{time: current, at: at})
		}

		current, err = current.AddMinutes(policy.SlotStepMinutes)
		if errors.Is(err, types.ErrOutOfDay) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return starts, nil
}

func slotsCacheKey(req *SlotsRequest, date time.Time, policy *domain.BookingPolicy, now time.Time) string {
	location := ""
	if req.PreferredLocation != nil {
		location = string(*req.PreferredLocation)
	}
	// Для сегодняшней даты и последнего дня окна набор слотов зависит от текущей минуты
	bucket := int64(0)
	local := now.In(date.Location())
	if isSameDay(date, local) || (policy.HasAdvanceBookingLimit() && isSameDay(date, policy.LatestBookable(local))) {
		bucket = now.Unix() / 60
	}
	return fmt.Sprintf("slots|%s|%s|%d|%d|%s|%s-%s-%d|%d",
		date.Format(domain.DateFormat), date.Location(), req.PartySize, req.DurationMinutes, location,
		policy.OpeningTime, policy.ClosingTime, policy.SlotStepMinutes, bucket)
}
