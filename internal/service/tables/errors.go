package tables

import "errors"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("table not found")

	// ErrDuplicateNumber возвращается, когда номер уже занят активным столом
	ErrDuplicateNumber = errors.New("table number is already in use")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
