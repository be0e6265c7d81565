package update_table_layout

import (
	"math"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// detectCollisions все неупорядоченные пары пакета, стоящие ближе threshold.
// Пары идут в порядке пакета: (0,1), (0,2), ..., (1,2), ...
func detectCollisions(positions []domain.TablePosition, threshold float64) []domain.Collision {
	collisions := make([]domain.Collision, 0)

	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			a, b := positions[i], positions[j]
			distance := math.Hypot(a.Position.X-b.Position.X, a.Position.Y-b.Position.Y)
			if distance < threshold {
				collisions = append(collisions, domain.Collision{
					TableA:   a.TableID,
					TableB:   b.TableID,
					Distance: distance,
				})
			}
		}
	}

	return collisions
}
