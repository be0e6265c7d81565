package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidDate возвращается, когда время брони нарушает политику (прошлое, окно, часы работы)
	ErrInvalidDate = errors.New("create_reservation: reservation time is not bookable")

	// ErrCustomerNotFound возвращается, когда клиента нет в справочнике
	ErrCustomerNotFound = errors.New("create_reservation: customer not found")

	// ErrTableNotFound возвращается, когда выбранный стол не найден
	ErrTableNotFound = errors.New("create_reservation: table not found")

	// ErrTableUnsuitable возвращается, когда стол выключен или мал для компании
	ErrTableUnsuitable = errors.New("create_reservation: table cannot seat this party")

	// ErrConflict возвращается, когда стол занят на запрошенный интервал
	ErrConflict = errors.New("create_reservation: table is already booked for this time")

	// ErrNoTableAvailable возвращается, когда автоподбор не нашёл свободного стола
	ErrNoTableAvailable = errors.New("create_reservation: no table available for this time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
