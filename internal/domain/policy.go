package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

var (
	ErrStartInPast         = errors.New("reservation start is in the past")
	ErrNoticeTooShort      = errors.New("reservation start violates minimum booking notice")
	ErrTooFarAhead         = errors.New("reservation start is beyond advance booking window")
	ErrOutsideOpeningHours = errors.New("reservation does not fit opening hours")
)

// BookingPolicy правила приёма бронирований ресторана
type BookingPolicy struct {
	OpeningTime             types.TimeString
	ClosingTime             types.TimeString
	SlotStepMinutes         int
	DefaultDurationMinutes  int
	AdvanceBookingDays      int // 0 = без ограничения
	MinBookingNoticeMinutes int
	UpdatedAt               time.Time
}

func (p *BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// LatestBookable самый поздний допустимый старт относительно now
func (p *BookingPolicy) LatestBookable(now time.Time) time.Time {
	return now.AddDate(0, 0, p.AdvanceBookingDays)
}

// EarliestBookable самый ранний допустимый старт относительно now
func (p *BookingPolicy) EarliestBookable(now time.Time) time.Time {
	return now.Add(time.Duration(p.MinBookingNoticeMinutes) * time.Minute)
}

// CheckWindow проверяет, что визит [start, start+minutes) можно принять при текущем now.
// start должен быть в часовом поясе ресторана
func (p *BookingPolicy) CheckWindow(start time.Time, minutes int, now time.Time) error {
	if start.Before(now) {
		return ErrStartInPast
	}
	if start.Before(p.EarliestBookable(now)) {
		return fmt.Errorf("%w: at least %d minutes in advance", ErrNoticeTooShort, p.MinBookingNoticeMinutes)
	}
	if p.HasAdvanceBookingLimit() && start.After(p.LatestBookable(now)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrTooFarAhead, p.AdvanceBookingDays)
	}

	opening, err := p.OpeningTime.OnDate(start)
	if err != nil {
		return err
	}
	closing, err := p.ClosingTime.OnDate(start)
	if err != nil {
		return err
	}
	end := start.Add(time.Duration(minutes) * time.Minute)
	if start.Before(opening) || end.After(closing) {
		return fmt.Errorf("%w: open %s-%s", ErrOutsideOpeningHours, p.OpeningTime, p.ClosingTime)
	}

	return nil
}
