package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusPending, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusCompleted, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{OrderStatusPending, OrderStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatus_ValidAndTerminal(t *testing.T) {
	for _, s := range OrderStatuses() {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("archived").Valid())
	assert.False(t, OrderStatus("").Valid())

	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
	assert.False(t, OrderStatus("archived").IsTerminal())
}

func TestConsultationStatus_Valid(t *testing.T) {
	assert.True(t, ConsultationStatusInProgress.Valid())
	assert.False(t, ConsultationStatus("shipped").Valid())
}

func TestOrderItemDetail_Subtotal(t *testing.T) {
	assert.Equal(t, int64(300), OrderItemDetail{Quantity: 3, PriceAtTime: 100}.Subtotal())
}
