package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	policyRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-TableBookingService/internal/service/policy/models"
)

// Service политика бронирования ресторана
type Service struct {
	repo     PolicyRepository
	defaults domain.BookingPolicy
	logger   Logger
}

// NewService defaults действуют, пока менеджер не сохранил свою политику
func NewService(repo PolicyRepository, defaults domain.BookingPolicy, logger Logger) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Get текущая политика; если в БД её нет, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context) (*domain.BookingPolicy, error) {
	p, _, err := s.load(ctx)
	return p, err
}

// GetPolicy то же, что Get, в виде DTO
func (s *Service) GetPolicy(ctx context.Context) (*models.PolicyResponse, error) {
	p, isDefault, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPolicy(p, isDefault), nil
}

// Update частичное обновление политики, доступно менеджерам
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	// 1. Текущая политика (или значения по умолчанию)
	current, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Применяем изменения и валидируем результат целиком
	if err := req.ApplyToPolicy(current); err != nil {
		s.logger.Warn("Update: invalid time in request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validatePolicy(current); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.repo.Upsert(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: booking policy saved: %s-%s, step=%d, duration=%d, advance=%d, notice=%d",
		saved.OpeningTime, saved.ClosingTime, saved.SlotStepMinutes, saved.DefaultDurationMinutes,
		saved.AdvanceBookingDays, saved.MinBookingNoticeMinutes)
	return models.FromDomainPolicy(saved, false), nil
}

func (s *Service) load(ctx context.Context) (*domain.BookingPolicy, bool, error) {
	p, err := s.repo.Get(ctx)
	if err == nil {
		return p, false, nil
	}
	if errors.Is(err, policyRepo.ErrPolicyNotFound) {
		defaults := s.defaults
		return &defaults, true, nil
	}
	s.logger.Error("Get: repository error: %v", err)
	return nil, false, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
}

// validatePolicy проверяет согласованность политики
func validatePolicy(p *domain.BookingPolicy) error {
	if p.OpeningTime.Validate() != nil || p.ClosingTime.Validate() != nil {
		return fmt.Errorf("%w: opening and closing time must be HH:MM", ErrInvalidInput)
	}
	if !p.OpeningTime.IsBefore(p.ClosingTime) {
		return fmt.Errorf("%w: opening time must be before closing time", ErrInvalidInput)
	}
	if p.SlotStepMinutes < domain.MinSlotStepMinutes || p.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slot step must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}
	if p.DefaultDurationMinutes < domain.MinDurationMinutes || p.DefaultDurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: default duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if p.AdvanceBookingDays < 0 || p.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be between 0 and %d",
			ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}
	if p.MinBookingNoticeMinutes < 0 || p.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: min booking notice must be between 0 and %d minutes",
			ErrInvalidInput, domain.MaxBookingNoticeMinutes)
	}

	// Хотя бы один визит длительности по умолчанию должен помещаться в часы работы
	end, err := p.OpeningTime.AddMinutes(p.DefaultDurationMinutes)
	if err != nil || end.IsAfter(p.ClosingTime) {
		return fmt.Errorf("%w: default duration does not fit between opening and closing time", ErrInvalidInput)
	}

	return nil
}
