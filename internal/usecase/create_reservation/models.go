package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// Request модель запроса на создание брони
type Request struct {
	CustomerID        int64            // ID клиента в CustomerService
	DateTime          time.Time        // Начало визита
	DurationMinutes   int              // 0 = длительность из политики
	PartySize         int              // Количество гостей
	TableID           *int64           // Конкретный стол (опционально)
	AutoAssign        bool             // Подобрать стол автоматически, если TableID не задан
	PreferredLocation *domain.Location // Желаемая зона для автоподбора
	Notes             *string          // Пожелания гостя
}

// Response созданная бронь
type Response struct {
	Reservation *domain.Reservation
	Assignment  string // "table", "auto" или "unassigned"
}

const (
	assignmentTable      = "table"
	assignmentAuto       = "auto"
	assignmentUnassigned = "unassigned"
)
