package update_table_layout

import "github.com/m04kA/SMC-TableBookingService/internal/domain"

// Request пакет новых позиций столов
type Request struct {
	Positions []domain.TablePosition
}

// Response применённые позиции и найденные пересечения
type Response struct {
	Updated    int
	Collisions []domain.Collision
}
