package domain

import "time"

// Location зона зала, в которой стоит стол
type Location string

const (
	LocationTerraceSeaView  Location = "terrace-sea-view"
	LocationTerraceStandard Location = "terrace-standard"
	LocationIndoorWindow    Location = "indoor-window"
	LocationIndoorStandard  Location = "indoor-standard"
	LocationBarArea         Location = "bar-area"
)

// Locations все зоны в порядке отображения
var Locations = []Location{
	LocationTerraceSeaView,
	LocationTerraceStandard,
	LocationIndoorWindow,
	LocationIndoorStandard,
	LocationBarArea,
}

func (l Location) IsValid() bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}

// Shape форма стола, влияет только на отрисовку схемы зала
type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeRound     Shape = "round"
	ShapeSquare    Shape = "square"
)

func (s Shape) IsValid() bool {
	switch s {
	case ShapeRectangle, ShapeRound, ShapeSquare:
		return true
	}
	return false
}

// Position координаты стола на схеме зала
type Position struct {
	X float64
	Y float64
}

// InBounds проверяет, что точка лежит в плоскости схемы
func (p Position) InBounds() bool {
	return p.X >= LayoutMinCoordinate && p.X <= LayoutMaxCoordinate &&
		p.Y >= LayoutMinCoordinate && p.Y <= LayoutMaxCoordinate
}

// Table стол ресторана
type Table struct {
	ID        int64
	Number    int
	Capacity  int
	Location  Location
	Shape     Shape
	Position  Position
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanSeat true, если стол активен и вмещает компанию
func (t *Table) CanSeat(partySize int) bool {
	return t.IsActive && t.Capacity >= partySize
}

// TableFilter фильтр справочника столов
type TableFilter struct {
	MinCapacity     *int      // Минимальная вместимость (опционально)
	Location        *Location // Зона (опционально)
	IncludeInactive bool      // Включать ли выключенные столы
}
