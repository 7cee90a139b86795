package producer

import (
	"context"
	"encoding/json"
	"time"

	"shop-service/internal/service"

	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// EmailProducer кладёт письма в топик, их забирает cmd/notifier. Реализует service.Mailer.
type EmailProducer struct {
	writer messageWriter
}

func NewEmailProducer(brokers []string, topic string) *EmailProducer {
	return &EmailProducer{writer: newWriter(brokers, topic)}
}

func (p *EmailProducer) SendEmail(ctx context.Context, key string, msg service.EmailMessage) error {
	return writeJSON(ctx, p.writer, key, msg, nil)
}

func (p *EmailProducer) Close() error {
	return p.writer.Close()
}

// OrderEventProducer публикует события заказов, ключ сообщения: id заказа,
// поэтому события одного заказа попадают в одну партицию. Реализует service.EventBus.
type OrderEventProducer struct {
	writer messageWriter
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return &OrderEventProducer{writer: newWriter(brokers, topic)}
}

func (p *OrderEventProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return writeJSON(ctx, p.writer, e.OrderID.String(), e, eventHeaders("order.created"))
}

func (p *OrderEventProducer) PublishOrderCancelled(ctx context.Context, e service.OrderCancelledEvent) error {
	return writeJSON(ctx, p.writer, e.OrderID.String(), e, eventHeaders("order.cancelled"))
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}

func eventHeaders(eventType string) []kafka.Header {
	return []kafka.Header{{Key: "event-type", Value: []byte(eventType)}}
}

func writeJSON(ctx context.Context, w messageWriter, key string, v any, headers []kafka.Header) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: headers,
	})
}
