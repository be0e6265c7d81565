// Package pgerrors классифицирует ошибки PostgreSQL, возвращаемые драйвером lib/pq
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

const (
	CodeUniqueViolation      = "23505"
	CodeExclusionViolation   = "23P01"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// Code возвращает SQLSTATE ошибки или пустую строку, если это не ошибка PostgreSQL
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsExclusionViolation нарушение exclusion constraint (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return Code(err) == CodeExclusionViolation
}

// IsConcurrencyConflict сериализуемая транзакция не может быть зафиксирована
// из-за параллельной записи (serialization failure или deadlock)
func IsConcurrencyConflict(err error) bool {
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}
