package availability

import "errors"

var (
	// ErrInvalidInput некорректные параметры запроса
	ErrInvalidInput = errors.New("availability: invalid input")

	// ErrInvalidDate дата в прошлом или дальше окна предварительной записи
	ErrInvalidDate = errors.New("availability: date is outside booking window")

	// ErrConflict стол занят в запрошенное время
	ErrConflict = errors.New("availability: table is not available at requested time")

	// ErrTableNotFound стол не найден
	ErrTableNotFound = errors.New("availability: table not found")

	// ErrTableInactive стол выключен и не принимает брони
	ErrTableInactive = errors.New("availability: table is inactive")

	// ErrCapacityExceeded компания не помещается за стол
	ErrCapacityExceeded = errors.New("availability: party size exceeds table capacity")

	// ErrInternal внутренняя ошибка (хранилище, политика)
	ErrInternal = errors.New("availability: internal error")
)
