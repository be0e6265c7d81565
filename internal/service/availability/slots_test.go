package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

func startTimes(result *SlotsResult) []types.TimeString {
	out := make([]types.TimeString, 0, len(result.Slots))
	for _, s := range result.Slots {
		out = append(out, s.StartTime)
	}
	return out
}

func TestFindSlots_GeneratesWindow(t *testing.T) {
	e := newTestEngine(floor(), &memLedger{})

	result, err := e.FindSlots(context.Background(), SlotsRequest{Date: evening, PartySize: 2})
	require.NoError(t, err)

	// 18:00-22:00 с шагом 60, визит 120 минут должен закончиться к закрытию
	assert.Equal(t, []types.TimeString{"18:00", "19:00", "20:00"}, startTimes(result))
	assert.Equal(t, 120, result.DurationMinutes)
	assert.Equal(t, at(19, 0), result.Slots[1].DateTime)
	assert.Equal(t, 6, result.Slots[0].AvailableTables)
	assert.Equal(t, 1, result.Slots[0].Recommendation.Number)
}

func TestFindSlots_SkipsFullSlots(t *testing.T) {
	tables := &memTables{tables: []*domain.Table{table(1, 1, 2, domain.LocationBarArea)}}
	ledger := &memLedger{}
	ledger.add(booked(1, at(19, 0), 90, domain.StatusConfirmed))
	e := newTestEngine(tables, ledger)

	result, err := e.FindSlots(context.Background(), SlotsRequest{Date: evening, PartySize: 2, DurationMinutes: 60})
	require.NoError(t, err)

	// 19:00 и 20:00 пересекаются с [19:00, 20:30), 21:00 уже свободен
	assert.Equal(t, []types.TimeString{"18:00", "21:00"}, startTimes(result))
}

func TestFindSlots_PreferredLocation(t *testing.T) {
	e := newTestEngine(floor(), &memLedger{})

	result, err := e.FindSlots(context.Background(), SlotsRequest{
		Date:              evening,
		PartySize:         2,
		PreferredLocation: ptr.Ptr(domain.LocationTerraceSeaView),
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Slots)

	assert.Equal(t, domain.LocationTerraceSeaView, result.Slots[0].Recommendation.Location)
	assert.Equal(t, 4, result.Slots[0].Recommendation.Number)
}

func TestFindSlots_TodayRespectsNotice(t *testing.T) {
	e := newTestEngine(floor(), &memLedger{})
	e.timeProvider = fixedClock{now: at(17, 30)}

	result, err := e.FindSlots(context.Background(), SlotsRequest{Date: evening, PartySize: 2, DurationMinutes: 60})
	require.NoError(t, err)

	// Ближайший старт не раньше 18:30
	assert.Equal(t, []types.TimeString{"19:00", "20:00", "21:00"}, startTimes(result))
}

func TestFindSlots_DateWindow(t *testing.T) {
	e := newTestEngine(floor(), &memLedger{})

	_, err := e.FindSlots(context.Background(), SlotsRequest{Date: time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), PartySize: 2})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = e.FindSlots(context.Background(), SlotsRequest{Date: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), PartySize: 2})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = e.FindSlots(context.Background(), SlotsRequest{Date: evening, PartySize: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFindSlots_NoTablesLargeEnough(t *testing.T) {
	e := newTestEngine(floor(), &memLedger{})

	result, err := e.FindSlots(context.Background(), SlotsRequest{Date: evening, PartySize: 12})
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
}

func TestGenerateSlotStarts_StopsBeforeMidnight(t *testing.T) {
	policy := defaultPolicy()
	policy.OpeningTime = "21:00"
	policy.ClosingTime = "23:59"

	starts, err := generateSlotStarts(policy, 120, evening, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, starts, 1)
	assert.Equal(t, types.TimeString("21:00"), starts[0].time)
}

func TestFindSlots_LastDayOfWindow(t *testing.T) {
	lastDay := time.Date(2027, 1, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want []types.TimeString
	}{
		{
			name: "before opening",
			now:  time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
			want: []types.TimeString{},
		},
		{
			name: "mid evening",
			now:  time.Date(2026, 10, 14, 19, 30, 0, 0, time.UTC),
			want: []types.TimeString{"18:00", "19:00"},
		},
		{
			name: "exactly on slot",
			now:  time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC),
			want: []types.TimeString{"18:00", "19:00", "20:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(floor(), &memLedger{})
			e.timeProvider = fixedClock{now: tt.now}

			result, err := e.FindSlots(context.Background(), SlotsRequest{Date: lastDay, PartySize: 2})
			require.NoError(t, err)
			assert.Equal(t, tt.want, startTimes(result))

			// Каждый предложенный слот принимается при создании брони
			policy := defaultPolicy()
			for _, slot := range result.Slots {
				assert.NoError(t, policy.CheckWindow(slot.DateTime, result.DurationMinutes, tt.now), slot.StartTime)
			}
		})
	}
}

func TestSlotsCacheKey_LastDayDependsOnMinute(t *testing.T) {
	policy := defaultPolicy()
	req := &SlotsRequest{PartySize: 2, DurationMinutes: 120}
	lastDay := time.Date(2027, 1, 12, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 10, 14, 19, 30, 0, 0, time.UTC)

	assert.NotEqual(t,
		slotsCacheKey(req, lastDay, policy, now),
		slotsCacheKey(req, lastDay, policy, now.Add(time.Minute)))
	assert.Equal(t,
		slotsCacheKey(req, evening.AddDate(0, 0, 1), policy, now),
		slotsCacheKey(req, evening.AddDate(0, 0, 1), policy, now.Add(time.Minute)))
}
