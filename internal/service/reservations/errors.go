package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidTransition возвращается, когда переход статуса запрещён жизненным циклом
	ErrInvalidTransition = errors.New("reservation status transition is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
