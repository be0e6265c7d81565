package models

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// UpdatePolicyRequest частичное обновление политики: меняются только переданные поля
type UpdatePolicyRequest struct {
	OpeningTime             *string `json:"openingTime,omitempty"` // HH:MM
	ClosingTime             *string `json:"closingTime,omitempty"` // HH:MM
	SlotStepMinutes         *int    `json:"slotStepMinutes,omitempty"`
	DefaultDurationMinutes  *int    `json:"defaultDurationMinutes,omitempty"`
	AdvanceBookingDays      *int    `json:"advanceBookingDays,omitempty"` // 0 = без ограничений
	MinBookingNoticeMinutes *int    `json:"minBookingNoticeMinutes,omitempty"`
}

// PolicyResponse политика бронирования
type PolicyResponse struct {
	OpeningTime             string     `json:"openingTime"`
	ClosingTime             string     `json:"closingTime"`
	SlotStepMinutes         int        `json:"slotStepMinutes"`
	DefaultDurationMinutes  int        `json:"defaultDurationMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	IsDefault               bool       `json:"isDefault"` // Политика ещё не сохранялась, действуют значения из конфига
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

func FromDomainPolicy(p *domain.BookingPolicy, isDefault bool) *PolicyResponse {
	if p == nil {
		return nil
	}

	resp := &PolicyResponse{
		OpeningTime:             p.OpeningTime.String(),
		ClosingTime:             p.ClosingTime.String(),
		SlotStepMinutes:         p.SlotStepMinutes,
		DefaultDurationMinutes:  p.DefaultDurationMinutes,
		AdvanceBookingDays:      p.AdvanceBookingDays,
		MinBookingNoticeMinutes: p.MinBookingNoticeMinutes,
		IsDefault:               isDefault,
	}
	if !p.UpdatedAt.IsZero() {
		updatedAt := p.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// ApplyToPolicy применяет переданные поля к политике
func (r *UpdatePolicyRequest) ApplyToPolicy(p *domain.BookingPolicy) error {
	if r.OpeningTime != nil {
		t, err := types.NewTimeStringFromString(*r.OpeningTime)
		if err != nil {
			return err
		}
		p.OpeningTime = t
	}
	if r.ClosingTime != nil {
		t, err := types.NewTimeStringFromString(*r.ClosingTime)
		if err != nil {
			return err
		}
		p.ClosingTime = t
	}
	if r.SlotStepMinutes != nil {
		p.SlotStepMinutes = *r.SlotStepMinutes
	}
	if r.DefaultDurationMinutes != nil {
		p.DefaultDurationMinutes = *r.DefaultDurationMinutes
	}
	if r.AdvanceBookingDays != nil {
		p.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		p.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	return nil
}
