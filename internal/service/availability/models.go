package availability

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// CheckRequest запрос доступности столов на конкретное время
type CheckRequest struct {
	DateTime             time.Time        // Начало визита
	PartySize            int              // Количество гостей, 1..50
	DurationMinutes      int              // 0 = длительность по умолчанию
	PreferredLocation    *domain.Location // Желаемая зона (опционально)
	ExcludeReservationID *int64           // Бронь, которую редактируют (опционально)
	Limit                int              // Размер списка рекомендаций, 0 = по умолчанию
}

// Result снимок доступности
type Result struct {
	Available         bool                                `json:"available"`
	TotalTables       int                                 `json:"total_tables"`
	TablesByLocation  map[domain.Location][]*domain.Table `json:"tables_by_location"`
	Recommendations   []*domain.Table                     `json:"recommendations"`
	RequestedDateTime time.Time                           `json:"requested_date_time"`
	PartySize         int                                 `json:"party_size"`
	DurationMinutes   int                                 `json:"duration_minutes"`
}

// ConflictRequest проверка стола перед записью брони
type ConflictRequest struct {
	TableID              int64
	DateTime             time.Time
	DurationMinutes      int
	PartySize            int    // 0 = вместимость не проверяется
	ExcludeReservationID *int64 // Бронь не конфликтует сама с собой
}

// SlotsRequest поиск свободного времени на дату
type SlotsRequest struct {
	Date              time.Time // Дата в часовом поясе ресторана
	PartySize         int
	DurationMinutes   int // 0 = из политики бронирования
	PreferredLocation *domain.Location
}

// SlotsResult свободные слоты на дату
type SlotsResult struct {
	Date            time.Time `json:"date"`
	PartySize       int       `json:"party_size"`
	DurationMinutes int       `json:"duration_minutes"`
	Slots           []Slot    `json:"slots"`
}

// Slot стартовое время и лучшие варианты на него
type Slot struct {
	StartTime       types.TimeString `json:"start_time"`
	DateTime        time.Time        `json:"date_time"`
	AvailableTables int              `json:"available_tables"`
	Recommendation  *domain.Table    `json:"recommendation,omitempty"`
}
