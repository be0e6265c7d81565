package update_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInvalidDate возвращается, когда новое время нарушает политику бронирования
	ErrInvalidDate = errors.New("update_reservation: reservation time is not bookable")

	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrNotEditable возвращается, когда бронь уже не в статусе pending/confirmed
	ErrNotEditable = errors.New("update_reservation: reservation can no longer be edited")

	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("update_reservation: table not found")

	// ErrTableUnsuitable возвращается, когда стол выключен или мал для компании
	ErrTableUnsuitable = errors.New("update_reservation: table cannot seat this party")

	// ErrConflict возвращается, когда стол занят на новый интервал
	ErrConflict = errors.New("update_reservation: table is already booked for this time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
