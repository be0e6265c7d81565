package update_table_layout

import (
	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	updateTableLayout "github.com/m04kA/SMC-TableBookingService/internal/usecase/update_table_layout"
)

// UpdateLayoutRequest HTTP request model
type UpdateLayoutRequest struct {
	Positions []PositionItem `json:"positions"`
}

type PositionItem struct {
	TableID int64   `json:"tableId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// UpdateLayoutResponse HTTP response model. Пересечения носят рекомендательный характер
type UpdateLayoutResponse struct {
	Updated    int             `json:"updated"`
	Collisions []CollisionItem `json:"collisions"`
}

type CollisionItem struct {
	TableA   int64   `json:"tableA"`
	TableB   int64   `json:"tableB"`
	Distance float64 `json:"distance"`
}

func (r *UpdateLayoutRequest) ToUseCaseRequest() *updateTableLayout.Request {
	positions := make([]domain.TablePosition, 0, len(r.Positions))
	for _, p := range r.Positions {
		positions = append(positions, domain.TablePosition{
			TableID:  p.TableID,
			Position: domain.Position{X: p.X, Y: p.Y},
		})
	}
	return &updateTableLayout.Request{Positions: positions}
}

func FromUseCaseResponse(resp *updateTableLayout.Response) *UpdateLayoutResponse {
	out := &UpdateLayoutResponse{
		Updated:    resp.Updated,
		Collisions: make([]CollisionItem, 0, len(resp.Collisions)),
	}
	for _, c := range resp.Collisions {
		out.Collisions = append(out.Collisions, CollisionItem{
			TableA:   c.TableA,
			TableB:   c.TableB,
			Distance: c.Distance,
		})
	}
	return out
}
