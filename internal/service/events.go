package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderItemEvent struct {
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	PriceAtTime int64     `json:"price_at_time"`
}

type OrderCreatedEvent struct {
	OrderID     uuid.UUID        `json:"order_id"`
	UserID      uuid.UUID        `json:"user_id"`
	Items       []OrderItemEvent `json:"items"`
	TotalAmount int64            `json:"total_amount"`
	CreatedAt   time.Time        `json:"created_at"`
}

type OrderCancelledEvent struct {
	OrderID     uuid.UUID        `json:"order_id"`
	UserID      uuid.UUID        `json:"user_id"`
	Items       []OrderItemEvent `json:"items"`
	CancelledAt time.Time        `json:"cancelled_at"`
}

// EventBus публикует события заказов после коммита. nil отключает публикацию.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderCancelled(ctx context.Context, e OrderCancelledEvent) error
}

type EmailMessage struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

// Mailer ставит письмо в очередь на отправку (kafka -> notifier).
type Mailer interface {
	SendEmail(ctx context.Context, key string, msg EmailMessage) error
}
