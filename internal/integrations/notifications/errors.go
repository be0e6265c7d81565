package notifications

import "errors"

var (
	// ErrConnect не удалось подключиться к брокеру
	ErrConnect = errors.New("notifications: failed to connect to broker")

	// ErrMarshal не удалось сериализовать событие
	ErrMarshal = errors.New("notifications: failed to marshal event")

	// ErrPublish брокер не принял сообщение
	ErrPublish = errors.New("notifications: failed to publish event")
)
