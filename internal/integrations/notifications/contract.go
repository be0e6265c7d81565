package notifications

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Channel часть *amqp.Channel, нужная издателю
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Dialer открывает канал к брокеру
type Dialer func() (Channel, func() error, error)
