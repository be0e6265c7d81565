package availability

import "errors"

var (
	// ErrCacheRead ошибка чтения из Redis
	ErrCacheRead = errors.New("availability.cache: failed to read")

	// ErrCacheWrite ошибка записи в Redis
	ErrCacheWrite = errors.New("availability.cache: failed to write")

	// ErrCodec запись в кеше не читается как JSON
	ErrCodec = errors.New("availability.cache: failed to encode or decode entry")
)
