package update_table_layout

import (
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if len(req.Positions) == 0 {
		return fmt.Errorf("%w: positions are required", ErrInvalidInput)
	}
	if len(req.Positions) > domain.MaxLayoutBatchSize {
		return fmt.Errorf("%w: at most %d positions per batch", ErrInvalidInput, domain.MaxLayoutBatchSize)
	}

	seen := make(map[int64]struct{}, len(req.Positions))
	for _, p := range req.Positions {
		if p.TableID <= 0 {
			return fmt.Errorf("%w: tableID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[p.TableID]; ok {
			return fmt.Errorf("%w: table %d appears twice in the batch", ErrInvalidInput, p.TableID)
		}
		seen[p.TableID] = struct{}{}

		if !p.Position.InBounds() {
			return fmt.Errorf("%w: table %d position (%v, %v) is outside [%v, %v]",
				ErrInvalidInput, p.TableID, p.Position.X, p.Position.Y,
				domain.LayoutMinCoordinate, domain.LayoutMaxCoordinate)
		}
	}

	return nil
}
