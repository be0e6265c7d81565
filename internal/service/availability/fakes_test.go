package availability

import (
	"context"
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	tableRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/table"
	"github.com/m04kA/SMC-TableBookingService/pkg/logger"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

type memTables struct {
	tables []*domain.Table
	err    error
}

func (m *memTables) ListActive(_ context.Context, minCapacity *int, location *domain.Location) ([]*domain.Table, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Table, 0)
	for _, t := range m.tables {
		if !t.IsActive {
			continue
		}
		if minCapacity != nil && t.Capacity < *minCapacity {
			continue
		}
		if location != nil && t.Location != *location {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memTables) GetByID(_ context.Context, id int64) (*domain.Table, error) {
	for _, t := range m.tables {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, tableRepo.ErrTableNotFound
}

type memLedger struct {
	reservations []*domain.Reservation
	err          error
	calls        int
}

func (m *memLedger) FindOverlapping(_ context.Context, f domain.OverlapFilter) ([]*domain.Reservation, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	window := domain.Interval{Start: f.Start, End: f.End}
	out := make([]*domain.Reservation, 0)
	for _, r := range m.reservations {
		if r.TableID == nil {
			continue
		}
		if f.TableID != nil && *r.TableID != *f.TableID {
			continue
		}
		if f.ExcludeID != nil && r.ID == *f.ExcludeID {
			continue
		}
		if !hasStatus(f.Statuses, r.Status) {
			continue
		}
		if r.Interval().Overlaps(window) {
			out = append(out, r)
		}
	}
	return out, nil
}

// add имитирует запись брони после успешной проверки
func (m *memLedger) add(r *domain.Reservation) {
	r.ID = int64(len(m.reservations) + 1)
	m.reservations = append(m.reservations, r)
}

func hasStatus(statuses []domain.ReservationStatus, s domain.ReservationStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

type fixedPolicy struct {
	policy *domain.BookingPolicy
}

func (p fixedPolicy) Get(context.Context) (*domain.BookingPolicy, error) {
	copied := *p.policy
	return &copied, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type countingCache struct {
	data map[string]interface{}
	gets int
	hits int
}

func (c *countingCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.gets++
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	switch d := dest.(type) {
	case *Result:
		*d = *(v.(*Result))
	case *SlotsResult:
		*d = *(v.(*SlotsResult))
	}
	return true, nil
}

func (c *countingCache) Set(_ context.Context, key string, value interface{}) error {
	c.data[key] = value
	return nil
}

// jsonCache хранит значения как Redis-кеш: сериализованными в JSON
type jsonCache struct {
	data map[string][]byte
	hits int
}

func (c *jsonCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *jsonCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

type nopCache struct{}

func (nopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (nopCache) Set(context.Context, string, interface{}) error { return nil }

var (
	_ TableRepository       = (*memTables)(nil)
	_ ReservationRepository = (*memLedger)(nil)
)

func table(id int64, number, capacity int, location domain.Location) *domain.Table {
	return &domain.Table{ID: id, Number: number, Capacity: capacity, Location: location, IsActive: true}
}

func booked(tableID int64, start time.Time, minutes int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		TableID:         &tableID,
		DateTime:        start,
		DurationMinutes: minutes,
		PartySize:       2,
		Status:          status,
	}
}

func defaultPolicy() *domain.BookingPolicy {
	return &domain.BookingPolicy{
		OpeningTime:             types.TimeString("18:00"),
		ClosingTime:             types.TimeString("22:00"),
		SlotStepMinutes:         60,
		DefaultDurationMinutes:  120,
		AdvanceBookingDays:      90,
		MinBookingNoticeMinutes: 60,
	}
}

var evening = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return evening.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func newTestEngine(tables *memTables, ledger *memLedger) *Engine {
	e := NewEngine(tables, ledger, fixedPolicy{policy: defaultPolicy()}, nopCache{}, 0, logger.NewNop())
	e.timeProvider = fixedClock{now: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
	return e
}
