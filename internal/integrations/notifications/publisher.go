package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue очередь событий журнала бронирований
const DefaultQueue = "reservations.events"

// Publisher публикует события в RabbitMQ.
// Соединение открывается лениво и переоткрывается после ошибки публикации
type Publisher struct {
	dial  Dialer
	queue string
	log   Logger

	mu        sync.Mutex
	ch        Channel
	closeConn func() error
}

// NewPublisher издатель поверх AMQP URL
func NewPublisher(url, queue string, log Logger) *Publisher {
	return NewPublisherWithDialer(AMQPDialer(url), queue, log)
}

func NewPublisherWithDialer(dial Dialer, queue string, log Logger) *Publisher {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Publisher{dial: dial, queue: queue, log: log}
}

// AMQPDialer открывает соединение и канал amqp091
func AMQPDialer(url string) Dialer {
	return func() (Channel, func() error, error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, nil, err
		}
		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return ch, conn.Close, nil
	}
}

// Publish отправляет событие как persistent JSON-сообщение
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.Kind),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("%w: %s: %v", ErrPublish, event.Kind, err)
	}

	p.log.Info("Published %s for reservation_id=%d", event.Kind, event.ReservationID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

func (p *Publisher) channel() (Channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}

	ch, closeConn, err := p.dial()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		if closeConn != nil {
			_ = closeConn()
		}
		return nil, fmt.Errorf("%w: declare queue %s: %v", ErrConnect, p.queue, err)
	}

	p.ch = ch
	p.closeConn = closeConn
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.closeConn != nil {
		if err := p.closeConn(); err != nil {
			p.log.Warn("Failed to close broker connection: %v", err)
		}
		p.closeConn = nil
	}
}

// NopPublisher используется, когда брокер не настроен
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
