package models

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// PositionDTO координаты на схеме зала
type PositionDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TableResponse стол в ответах API
type TableResponse struct {
	ID        int64       `json:"id"`
	Number    int         `json:"number"`
	Capacity  int         `json:"capacity"`
	Location  string      `json:"location"`
	Shape     string      `json:"shape"`
	Position  PositionDTO `json:"position"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// TableListResponse список столов
type TableListResponse struct {
	Tables []*TableResponse `json:"tables"`
	Total  int              `json:"total"`
}

// CreateTableRequest новый стол
type CreateTableRequest struct {
	Number   int          `json:"number"`
	Capacity int          `json:"capacity"`
	Location string       `json:"location"`
	Shape    string       `json:"shape"`
	Position *PositionDTO `json:"position,omitempty"` // По умолчанию (0, 0)
	IsActive *bool        `json:"isActive,omitempty"` // По умолчанию true
}

// UpdateTableRequest частичное обновление стола. Позиция меняется через схему зала
type UpdateTableRequest struct {
	Number   *int    `json:"number,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Location *string `json:"location,omitempty"`
	Shape    *string `json:"shape,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ListTablesRequest фильтр справочника
type ListTablesRequest struct {
	Location        *string
	MinCapacity     *int
	IncludeInactive bool
}

func FromDomainTable(t *domain.Table) *TableResponse {
	if t == nil {
		return nil
	}
	return &TableResponse{
		ID:        t.ID,
		Number:    t.Number,
		Capacity:  t.Capacity,
		Location:  string(t.Location),
		Shape:     string(t.Shape),
		Position:  PositionDTO{X: t.Position.X, Y: t.Position.Y},
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func FromDomainTableList(list []*domain.Table) []*TableResponse {
	resp := make([]*TableResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, FromDomainTable(t))
	}
	return resp
}

// ToDomainTable собирает стол из запроса (без валидации)
func (r *CreateTableRequest) ToDomainTable() *domain.Table {
	t := &domain.Table{
		Number:   r.Number,
		Capacity: r.Capacity,
		Location: domain.Location(r.Location),
		Shape:    domain.Shape(r.Shape),
		IsActive: true,
	}
	if r.Shape == "" {
		t.Shape = domain.ShapeRectangle
	}
	if r.Position != nil {
		t.Position = domain.Position{X: r.Position.X, Y: r.Position.Y}
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
	return t
}

// ApplyToTable применяет переданные поля к столу
func (r *UpdateTableRequest) ApplyToTable(t *domain.Table) {
	if r.Number != nil {
		t.Number = *r.Number
	}
	if r.Capacity != nil {
		t.Capacity = *r.Capacity
	}
	if r.Location != nil {
		t.Location = domain.Location(*r.Location)
	}
	if r.Shape != nil {
		t.Shape = domain.Shape(*r.Shape)
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
}
