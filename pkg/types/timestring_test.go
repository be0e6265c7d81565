package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "00:00"},
		{in: "19:30"},
		{in: "23:59"},
		{in: "24:00", wantErr: true},
		{in: "7:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddMinutes(t *testing.T) {
	got, err := TimeString("19:00").AddMinutes(150)
	require.NoError(t, err)
	assert.Equal(t, TimeString("21:30"), got)

	_, err = TimeString("23:00").AddMinutes(60)
	assert.ErrorIs(t, err, ErrOutOfDay)
}

func TestCompare(t *testing.T) {
	assert.True(t, TimeString("10:00").IsBefore("10:30"))
	assert.False(t, TimeString("10:30").IsBefore("10:30"))
	assert.True(t, TimeString("22:00").IsAfter("21:59"))
}

func TestOnDate(t *testing.T) {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("18:45").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 18, 45, 0, 0, time.UTC), got)
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("11:30:00")))
	assert.Equal(t, TimeString("11:30"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 9, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
