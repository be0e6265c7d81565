package update_reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.DateTime == nil && req.DurationMinutes == nil && req.PartySize == nil && req.TableID == nil && req.Notes == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.DateTime != nil && req.DateTime.IsZero() {
		return fmt.Errorf("%w: dateTime must not be empty", ErrInvalidInput)
	}
	if req.DurationMinutes != nil &&
		(*req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes", ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if req.PartySize != nil && (*req.PartySize < domain.MinPartySize || *req.PartySize > domain.MaxPartySize) {
		return fmt.Errorf("%w: party size must be between %d and %d", ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}
	if req.TableID != nil && *req.TableID <= 0 {
		return fmt.Errorf("%w: tableID must be positive", ErrInvalidInput)
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

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
