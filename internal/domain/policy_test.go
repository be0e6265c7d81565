package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckWindow(t *testing.T) {
	policy := &BookingPolicy{
		OpeningTime:             "12:00",
		ClosingTime:             "23:00",
		AdvanceBookingDays:      90,
		MinBookingNoticeMinutes: 60,
	}
	now := time.Date(2026, 10, 20, 17, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		minutes int
		wantErr error
	}{
		{name: "ok", start: at(19, 0), minutes: 120},
		{name: "ends at closing", start: at(21, 0), minutes: 120},
		{name: "past", start: at(17, 0), minutes: 60, wantErr: ErrStartInPast},
		{name: "notice", start: at(18, 0), minutes: 60, wantErr: ErrNoticeTooShort},
		{name: "after closing", start: at(22, 0), minutes: 120, wantErr: ErrOutsideOpeningHours},
		{name: "before opening", start: at(19, 0).AddDate(0, 0, 1).Add(-8 * time.Hour), minutes: 60, wantErr: ErrOutsideOpeningHours},
		{name: "too far ahead", start: at(19, 0).AddDate(0, 0, 91), minutes: 60, wantErr: ErrTooFarAhead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CheckWindow(tt.start, tt.minutes, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheckWindow_NoAdvanceLimit(t *testing.T) {
	policy := &BookingPolicy{OpeningTime: "12:00", ClosingTime: "23:00"}
	now := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, policy.CheckWindow(at(19, 0).AddDate(2, 0, 0), 60, now))
}
