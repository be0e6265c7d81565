package reassign_table

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reassign_table: invalid input data")

	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reassign_table: reservation not found")

	// ErrNotReassignable возвращается, когда бронь уже не держит стол (завершена, отменена)
	ErrNotReassignable = errors.New("reassign_table: reservation cannot be moved to another table")

	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("reassign_table: table not found")

	// ErrTableUnsuitable возвращается, когда стол выключен или мал для компании
	ErrTableUnsuitable = errors.New("reassign_table: table cannot seat this party")

	// ErrConflict возвращается, когда новый стол занят на интервал брони
	ErrConflict = errors.New("reassign_table: table is already booked for this time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reassign_table: internal error")
)
