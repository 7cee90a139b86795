package models

import (
	"time"

	"github.com/google/uuid"
)

// Read-модели для join-выборок, отдельных таблиц под ними нет.

// CartLine: строка корзины вместе с актуальными данными товара.
type CartLine struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int64
	Name      string
	Price     int64
	ImageURL  string
	Stock     int64
}

type OrderItemDetail struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	ImageURL    string
	Category    string
	Quantity    int64
	PriceAtTime int64
}

func (d OrderItemDetail) Subtotal() int64 { return d.Quantity * d.PriceAtTime }

type RatingView struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Username  string
	OrderID   uuid.UUID
	Rating    int
	Review    *string
	CreatedAt time.Time
}

// RateableProduct: товар из завершённого заказа пользователя.
type RateableProduct struct {
	ProductID    uuid.UUID
	OrderID      uuid.UUID
	Name         string
	ImageURL     string
	Category     string
	OrderDate    time.Time
	AlreadyRated bool
}
