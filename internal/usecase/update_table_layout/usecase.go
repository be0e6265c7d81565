package update_table_layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	tableRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/table"
)

// UseCase пакетная расстановка столов на схеме зала.
// Пересечения только сообщаются и сохранению не мешают
type UseCase struct {
	tableRepo TableRepository
	txManager TransactionManager
	threshold float64
	logger    Logger
}

func NewUseCase(tableRepo TableRepository, txManager TransactionManager, threshold float64, logger Logger) *UseCase {
	if threshold <= 0 {
		threshold = domain.DefaultCollisionThreshold
	}
	return &UseCase{
		tableRepo: tableRepo,
		txManager: txManager,
		threshold: threshold,
		logger:    logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateTableLayout: %d positions", len(req.Positions))

	// 1. Валидация пакета
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateTableLayout: validation failed: %v", err)
		return nil, err
	}

	// 2. Пакет применяется целиком или никак
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		return uc.tableRepo.UpdatePositions(txCtx, req.Positions)
	})
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			uc.logger.Warn("UpdateTableLayout: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrTableNotFound, err)
		}
		uc.logger.Error("UpdateTableLayout: failed to update positions: %v", err)
		return nil, fmt.Errorf("%w: failed to update positions: %v", ErrInternal, err)
	}

	// 3. Пересечения по сохранённому пакету
	collisions := detectCollisions(req.Positions, uc.threshold)
	if len(collisions) > 0 {
		uc.logger.Info("UpdateTableLayout: %d collisions closer than %.0f units", len(collisions), uc.threshold)
	}

	return &Response{
		Updated:    len(req.Positions),
		Collisions: collisions,
	}, nil
}
