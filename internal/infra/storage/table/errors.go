package table

import "errors"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("table.repository: table not found")

	// ErrDuplicateNumber возвращается, когда номер уже занят другим активным столом
	ErrDuplicateNumber = errors.New("table.repository: table number already in use")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("table.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("table.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("table.repository: failed to scan row")
)
