package tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	tableRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/table"
	"github.com/m04kA/SMC-TableBookingService/internal/service/tables/models"
)

// Service справочник столов ресторана
type Service struct {
	tableRepo TableRepository
	cache     Invalidator
	logger    Logger
}

// NewService создает новый экземпляр сервиса столов
func NewService(tableRepo TableRepository, cache Invalidator, logger Logger) *Service {
	return &Service{
		tableRepo: tableRepo,
		cache:     cache,
		logger:    logger,
	}
}

// List столы с фильтром по зоне и вместимости
func (s *Service) List(ctx context.Context, req *models.ListTablesRequest) (*models.TableListResponse, error) {
	filter := domain.TableFilter{
		MinCapacity:     req.MinCapacity,
		IncludeInactive: req.IncludeInactive,
	}
	if req.Location != nil {
		location := domain.Location(*req.Location)
		if !location.IsValid() {
			s.logger.Warn("List: unknown location=%s", *req.Location)
			return nil, fmt.Errorf("%w: unknown location %q", ErrInvalidInput, *req.Location)
		}
		filter.Location = &location
	}
	if req.MinCapacity != nil && *req.MinCapacity < 1 {
		return nil, fmt.Errorf("%w: minCapacity must be positive", ErrInvalidInput)
	}

	list, err := s.tableRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.TableListResponse{
		Tables: models.FromDomainTableList(list),
		Total:  len(list),
	}, nil
}

// Create добавляет стол. Номер уникален среди активных столов
func (s *Service) Create(ctx context.Context, req *models.CreateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("Create: table number=%d, capacity=%d, location=%s", req.Number, req.Capacity, req.Location)

	t := req.ToDomainTable()
	if err := validateTable(t); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.tableRepo.Create(ctx, t)
	if err != nil {
		if errors.Is(err, tableRepo.ErrDuplicateNumber) {
			s.logger.Warn("Create: table number=%d already in use", t.Number)
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNumber, t.Number)
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Create")
	s.logger.Info("Create: table id=%d created", created.ID)
	return models.FromDomainTable(created), nil
}

// Update меняет атрибуты стола. Выключенный стол перестаёт участвовать в подборе,
// уже назначенные на него брони остаются за персоналом
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("Update: table id=%d", id)

	current, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			s.logger.Warn("Update: table id=%d not found", id)
			return nil, ErrTableNotFound
		}
		s.logger.Error("Update: repository error for table id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - get table: %v", ErrInternal, err)
	}

	req.ApplyToTable(current)
	if err := validateTable(current); err != nil {
		s.logger.Warn("Update: validation failed for table id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.tableRepo.Update(ctx, current)
	if err != nil {
		switch {
		case errors.Is(err, tableRepo.ErrTableNotFound):
			return nil, ErrTableNotFound
		case errors.Is(err, tableRepo.ErrDuplicateNumber):
			s.logger.Warn("Update: table number=%d already in use", current.Number)
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNumber, current.Number)
		}
		s.logger.Error("Update: repository error for table id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Update")
	return models.FromDomainTable(updated), nil
}

func (s *Service) invalidate(ctx context.Context, op string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate availability cache: %v", op, err)
	}
}

func validateTable(t *domain.Table) error {
	if t.Number < 1 {
		return fmt.Errorf("%w: number must be positive", ErrInvalidInput)
	}
	if t.Capacity < domain.MinTableCapacity || t.Capacity > domain.MaxTableCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinTableCapacity, domain.MaxTableCapacity)
	}
	if !t.Location.IsValid() {
		return fmt.Errorf("%w: unknown location %q", ErrInvalidInput, t.Location)
	}
	if !t.Shape.IsValid() {
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidInput, t.Shape)
	}
	if !t.Position.InBounds() {
		return fmt.Errorf("%w: position must be within [%v, %v]",
			ErrInvalidInput, domain.LayoutMinCoordinate, domain.LayoutMaxCoordinate)
	}
	return nil
}
