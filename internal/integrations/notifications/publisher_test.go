package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/logger"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	publishErr error
	closed     int
}

func (c *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	c.declared = append(c.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed++
	return nil
}

func testReservation() *domain.Reservation {
	tableID := int64(5)
	return &domain.Reservation{
		ID:              10,
		CustomerID:      3,
		TableID:         &tableID,
		DateTime:        time.Date(2026, 10, 20, 19, 0, 0, 0, time.UTC),
		DurationMinutes: 120,
		PartySize:       4,
		Status:          domain.StatusPending,
	}
}

func TestPublish(t *testing.T) {
	ch := &fakeChannel{}
	dials := 0
	p := NewPublisherWithDialer(func() (Channel, func() error, error) {
		dials++
		return ch, nil, nil
	}, "", logger.NewNop())

	event := NewEvent(EventReservationCreated, testReservation(), time.Now())
	require.NoError(t, p.Publish(context.Background(), event))
	require.NoError(t, p.Publish(context.Background(), event))

	assert.Equal(t, 1, dials)
	assert.Equal(t, []string{DefaultQueue}, ch.declared)
	require.Len(t, ch.published, 2)
	assert.Equal(t, DefaultQueue, ch.keys[0])
	assert.Equal(t, event.ID, ch.published[0].MessageId)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var decoded Event
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &decoded))
	assert.Equal(t, int64(10), decoded.ReservationID)
	assert.Equal(t, EventReservationCreated, decoded.Kind)
}

func TestPublish_ReconnectsAfterFailure(t *testing.T) {
	broken := &fakeChannel{publishErr: errors.New("channel closed")}
	healthy := &fakeChannel{}
	channels := []*fakeChannel{broken, healthy}

	p := NewPublisherWithDialer(func() (Channel, func() error, error) {
		ch := channels[0]
		channels = channels[1:]
		return ch, nil, nil
	}, "events", logger.NewNop())

	event := NewEvent(EventStatusChanged, testReservation(), time.Now())

	err := p.Publish(context.Background(), event)
	assert.ErrorIs(t, err, ErrPublish)
	assert.Equal(t, 1, broken.closed)

	require.NoError(t, p.Publish(context.Background(), event))
	assert.Len(t, healthy.published, 1)
}

func TestPublish_DialError(t *testing.T) {
	p := NewPublisherWithDialer(func() (Channel, func() error, error) {
		return nil, nil, errors.New("connection refused")
	}, "", logger.NewNop())

	err := p.Publish(context.Background(), NewEvent(EventReservationUpdated, testReservation(), time.Now()))
	assert.ErrorIs(t, err, ErrConnect)
}

func TestNewEventIDsAreUnique(t *testing.T) {
	r := testReservation()
	a := NewEvent(EventReservationCreated, r, time.Now())
	b := NewEvent(EventReservationCreated, r, time.Now())
	assert.NotEqual(t, a.ID, b.ID)
}
