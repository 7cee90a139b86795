package models

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Таблица переходов: единственный источник правды о жизненном цикле заказа.
// Терминальные статусы (completed, cancelled) в качестве ключа не встречаются.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusCompleted},
}

func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, to := range orderTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

type ConsultationStatus string

const (
	ConsultationStatusPending    ConsultationStatus = "pending"
	ConsultationStatusConfirmed  ConsultationStatus = "confirmed"
	ConsultationStatusInProgress ConsultationStatus = "in_progress"
	ConsultationStatusCompleted  ConsultationStatus = "completed"
	ConsultationStatusCancelled  ConsultationStatus = "cancelled"
)

func ConsultationStatuses() []ConsultationStatus {
	return []ConsultationStatus{
		ConsultationStatusPending,
		ConsultationStatusConfirmed,
		ConsultationStatusInProgress,
		ConsultationStatusCompleted,
		ConsultationStatusCancelled,
	}
}

func (s ConsultationStatus) Valid() bool {
	for _, v := range ConsultationStatuses() {
		if v == s {
			return true
		}
	}
	return false
}
