package update_table_layout

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном пакете позиций
	ErrInvalidInput = errors.New("update_table_layout: invalid input data")

	// ErrTableNotFound возвращается, когда в пакете есть неизвестный стол; ничего не сохраняется
	ErrTableNotFound = errors.New("update_table_layout: table not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_table_layout: internal error")
)
