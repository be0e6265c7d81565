package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

func validatePartySize(partySize int) error {
	if partySize < domain.MinPartySize || partySize > domain.MaxPartySize {
		return fmt.Errorf("%w: party size must be between %d and %d", ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}
	return nil
}

func validateDuration(minutes int) error {
	if minutes < domain.MinDurationMinutes || minutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes", ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	return nil
}

func validateLocation(location *domain.Location) error {
	if location != nil && !location.IsValid() {
		return fmt.Errorf("%w: unknown location %q", ErrInvalidInput, *location)
	}
	return nil
}

func validateCheckRequest(req *CheckRequest) error {
	if req.DateTime.IsZero() {
		return fmt.Errorf("%w: dateTime is required", ErrInvalidInput)
	}
	if err := validatePartySize(req.PartySize); err != nil {
		return err
	}
	if err := validateDuration(req.DurationMinutes); err != nil {
		return err
	}
	if req.Limit < 0 || req.Limit > domain.MaxRecommendationLimit {
		return fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidInput, domain.MaxRecommendationLimit)
	}
	return validateLocation(req.PreferredLocation)
}

func validateConflictRequest(req *ConflictRequest) error {
	if req.TableID <= 0 {
		return fmt.Errorf("%w: tableID must be positive", ErrInvalidInput)
	}
	if req.DateTime.IsZero() {
		return fmt.Errorf("%w: dateTime is required", ErrInvalidInput)
	}
	if req.PartySize != 0 {
		if err := validatePartySize(req.PartySize); err != nil {
			return err
		}
	}
	return validateDuration(req.DurationMinutes)
}

func validateSlotsRequest(req *SlotsRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := validatePartySize(req.PartySize); err != nil {
		return err
	}
	if req.DurationMinutes != 0 {
		if err := validateDuration(req.DurationMinutes); err != nil {
			return err
		}
	}
	return validateLocation(req.PreferredLocation)
}

// validateDate дата не в прошлом и не дальше окна предварительной записи
func validateDate(date, now time.Time, policy *domain.BookingPolicy) error {
	if isDateInPast(date, now) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	if !policy.HasAdvanceBookingLimit() {
		return nil
	}

	maxDate := startOfDay(now.In(date.Location())).AddDate(0, 0, policy.AdvanceBookingDays)
	if startOfDay(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrInvalidDate, policy.AdvanceBookingDays)
	}

	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast дата раньше сегодняшнего дня (в часовом поясе date)
func isDateInPast(date, now time.Time) bool {
	return startOfDay(date).Before(startOfDay(now.In(date.Location())))
}
