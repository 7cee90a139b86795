package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"shop-service/internal/service"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { w.closed = true; return nil }

func TestOrderEventProducer_PublishOrderCreated(t *testing.T) {
	w := &fakeWriter{}
	p := &OrderEventProducer{writer: w}

	e := service.OrderCreatedEvent{
		OrderID:     uuid.New(),
		UserID:      uuid.New(),
		Items:       []service.OrderItemEvent{{ProductID: uuid.New(), Quantity: 2, PriceAtTime: 350}},
		TotalAmount: 700,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, p.PublishOrderCreated(context.Background(), e))
	require.Len(t, w.msgs, 1)

	m := w.msgs[0]
	assert.Equal(t, e.OrderID.String(), string(m.Key))
	require.Len(t, m.Headers, 1)
	assert.Equal(t, "order.created", string(m.Headers[0].Value))

	var got service.OrderCreatedEvent
	require.NoError(t, json.Unmarshal(m.Value, &got))
	assert.Equal(t, e.OrderID, got.OrderID)
	assert.Equal(t, int64(700), got.TotalAmount)
	assert.Equal(t, e.Items, got.Items)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestOrderEventProducer_PublishOrderCancelled(t *testing.T) {
	w := &fakeWriter{}
	p := &OrderEventProducer{writer: w}

	id := uuid.New()
	require.NoError(t, p.PublishOrderCancelled(context.Background(), service.OrderCancelledEvent{OrderID: id}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, id.String(), string(w.msgs[0].Key))
	assert.Equal(t, "order.cancelled", string(w.msgs[0].Headers[0].Value))
}

func TestEmailProducer_SendEmail(t *testing.T) {
	w := &fakeWriter{}
	p := &EmailProducer{writer: w}

	msg := service.EmailMessage{
		To:       "user@example.com",
		Subject:  "Сброс пароля",
		Template: "password_reset",
		Data:     map[string]any{"Code": "1234"},
	}
	require.NoError(t, p.SendEmail(context.Background(), "user-key", msg))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "user-key", string(w.msgs[0].Key))

	var got service.EmailMessage
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, msg.To, got.To)
	assert.Equal(t, "1234", got.Data["Code"])
}

func TestEmailProducer_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := &EmailProducer{writer: w}

	err := p.SendEmail(context.Background(), "k", service.EmailMessage{To: "a@b.c", Template: "x"})
	assert.EqualError(t, err, "broker down")
}
