package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidFormat строка не соответствует формату HH:MM
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfDay результат арифметики выходит за пределы суток
	ErrOutOfDay = errors.New("time string out of day range")
)

// TimeString время суток в формате "HH:MM" (без даты и часового пояса)
type TimeString string

// NewTimeString берёт часы и минуты из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString парсит и валидирует строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(strings.TrimSpace(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, ErrInvalidFormat
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidFormat
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidFormat
	}
	return h*60 + m, nil
}

// AddMinutes прибавляет минуты, результат должен остаться в пределах суток
// Ровно 24:00 не представимо и тоже считается выходом за пределы
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := current + minutes
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d min", ErrOutOfDay, t, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a < b
}

func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a > b
}

// OnDate возвращает момент времени t в дате date (в часовом поясе date)
func (t TimeString) OnDate(date time.Time) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location()), nil
}

// Value реализует driver.Valuer для колонок типа TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner. PostgreSQL отдаёт TIME как "HH:MM:SS"
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidFormat, src)
	}

	if len(raw) >= 5 {
		raw = raw[:5]
	}
	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
