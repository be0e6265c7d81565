package create_reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.DateTime.IsZero() {
		return fmt.Errorf("%w: dateTime is required", ErrInvalidInput)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: party size must be between %d and %d", ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	// 0 означает длительность по умолчанию
	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes", ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.TableID != nil && *req.TableID <= 0 {
		return fmt.Errorf("%w: tableID must be positive", ErrInvalidInput)
	}

	if req.TableID != nil && req.AutoAssign {
		return fmt.Errorf("%w: tableID and autoAssign are mutually exclusive", ErrInvalidInput)
	}

	if req.PreferredLocation != nil && !req.PreferredLocation.IsValid() {
		return fmt.Errorf("%w: unknown location %q", ErrInvalidInput, *req.PreferredLocation)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateWindow время визита допустимо по политике ресторана
func validateWindow(policy *domain.BookingPolicy, start time.Time, minutes int, now time.Time) error {
	err := policy.CheckWindow(start, minutes, now)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrStartInPast) ||
		errors.Is(err, domain.ErrNoticeTooShort) ||
		errors.Is(err, domain.ErrTooFarAhead) ||
		errors.Is(err, domain.ErrOutsideOpeningHours) {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return fmt.Errorf("%w: policy window check: %v", ErrInternal, err)
}
