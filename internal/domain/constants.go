package domain

// Значения по умолчанию
const (
	DefaultDurationMinutes         = 120
	DefaultSlotStepMinutes         = 30
	DefaultAdvanceBookingDays      = 90
	DefaultMinBookingNoticeMinutes = 60
	DefaultOpeningTime             = "12:00"
	DefaultClosingTime             = "23:00"
	DefaultRecommendationLimit     = 5
	DefaultCollisionThreshold      = 50.0
)

// Ограничения бизнес-валидации
const (
	MinPartySize            = 1
	MaxPartySize            = 50
	MinDurationMinutes      = 15
	MaxDurationMinutes      = 480 // 8 часов
	MinTableCapacity        = 1
	MaxTableCapacity        = 50
	MinSlotStepMinutes      = 5
	MaxSlotStepMinutes      = 240
	MaxAdvanceBookingDays   = 365
	MaxBookingNoticeMinutes = 10080 // неделя
	MaxNotesLength          = 500
	MaxLayoutBatchSize      = 200
	LayoutMinCoordinate     = 0.0
	LayoutMaxCoordinate     = 1000.0
	MaxRecommendationLimit  = 50
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы, при которых бронь занимает стол
var OccupyingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusSeated,
}
