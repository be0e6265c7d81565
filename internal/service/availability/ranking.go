package availability

import (
	"sort"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// freeTables столы, которые вмещают компанию и не заняты ни одной бронью,
// пересекающей interval. Единая точка проверки пересечения для всех операций
func freeTables(
	tables []*domain.Table,
	reservations []*domain.Reservation,
	interval domain.Interval,
	partySize int,
	excludeID *int64,
) []*domain.Table {
	occupied := make(map[int64]struct{})
	for _, r := range reservations {
		if !r.OccupiesTable() {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.Interval().Overlaps(interval) {
			occupied[*r.TableID] = struct{}{}
		}
	}

	free := make([]*domain.Table, 0, len(tables))
	for _, t := range tables {
		if !t.CanSeat(partySize) {
			continue
		}
		if _, busy := occupied[t.ID]; busy {
			continue
		}
		free = append(free, t)
	}

	return free
}

// groupByLocation раскладывает столы по зонам, внутри зоны по возрастанию номера
func groupByLocation(tables []*domain.Table) map[domain.Location][]*domain.Table {
	grouped := make(map[domain.Location][]*domain.Table)
	for _, t := range tables {
		grouped[t.Location] = append(grouped[t.Location], t)
	}

	for _, list := range grouped {
		sort.SliceStable(list, func(i, j int) bool {
			return byNumber(list[i], list[j])
		})
	}

	return grouped
}

// recommend порядок рекомендаций: желаемая зона, затем минимальная подходящая
// вместимость, затем номер стола
func recommend(tables []*domain.Table, preferred *domain.Location, limit int) []*domain.Table {
	ranked := make([]*domain.Table, len(tables))
	copy(ranked, tables)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if preferred != nil {
			aMatch, bMatch := a.Location == *preferred, b.Location == *preferred
			if aMatch != bMatch {
				return aMatch
			}
		}

		if a.Capacity != b.Capacity {
			return a.Capacity < b.Capacity
		}

		return byNumber(a, b)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

func byNumber(a, b *domain.Table) bool {
	if a.Number != b.Number {
		return a.Number < b.Number
	}
	return a.ID < b.ID
}
