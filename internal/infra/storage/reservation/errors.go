package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrOverlap возвращается, когда exclusion constraint отклонил пересекающийся интервал на столе
	ErrOverlap = errors.New("reservation.repository: overlapping reservation on table")

	// ErrConcurrentUpdate возвращается при serialization failure / deadlock
	ErrConcurrentUpdate = errors.New("reservation.repository: concurrent update")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")

	// ErrInvalidStatus возвращается для статуса без отметки времени
	ErrInvalidStatus = errors.New("reservation.repository: invalid reservation status")
)
