package service

import (
	"context"
	"fmt"
	"shop-service/internal/models"
	"shop-service/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type orderService struct {
	repo   *repository.Repository
	events EventBus
	now    func() time.Time
	log    *zap.Logger
}

func NewOrderService(repo *repository.Repository, events EventBus, log *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		events: events,
		now:    time.Now,
		log:    log,
	}
}

// Checkout превращает корзину в заказ одной транзакцией: проверка остатков,
// снимок цен, списание со склада условным UPDATE и очистка корзины.
func (s *orderService) Checkout(ctx context.Context) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var order *models.Order

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		lines, err := tx.Cart.ListWithProducts(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var total int64
		for _, l := range lines {
			if l.Quantity > l.Stock {
				return &StockError{ProductID: l.ProductID}
			}
			total += l.Price * l.Quantity
		}

		now := s.now()
		order = &models.Order{
			UserID:      userID,
			Status:      models.OrderStatusPending,
			TotalAmount: total,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   l.ProductID,
				Quantity:    l.Quantity,
				PriceAtTime: l.Price,
				CreatedAt:   now,
			})
		}
		if err := tx.OrderItems.BulkCreate(ctx, items); err != nil {
			return err
		}

		// остаток мог измениться после чтения корзины: решает условие stock >= q
		for _, it := range items {
			ok, err := tx.Products.DecrementStock(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &StockError{ProductID: it.ProductID}
			}
		}

		if _, err := tx.Cart.ClearForUser(ctx, userID); err != nil {
			return err
		}

		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Заказ оформлен",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("total_amount", order.TotalAmount),
	)

	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
			OrderID:     order.ID,
			UserID:      order.UserID,
			Items:       toItemEvents(order.Items),
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
		}); err != nil {
			s.log.Warn("Не удалось опубликовать событие order.created", zap.String("order_id", order.ID.String()), zap.Error(err))
		}
	}

	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var ord *models.Order
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		o, err := loadOrder(ctx, tx, id, userID, role)
		if err != nil {
			return err
		}
		ord, err = s.cancelInTx(ctx, tx, o)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterCancel(ctx, ord)
	return ord, nil
}

// SetStatus подчиняется той же таблице переходов, что и Cancel.
// Переход в cancelled выполняется через cancelInTx, чтобы вернуть товар на склад.
func (s *orderService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	next := models.OrderStatus(status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var ord *models.Order
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		o, err := loadOrder(ctx, tx, id, userID, role)
		if err != nil {
			return err
		}

		if next == models.OrderStatusCancelled {
			ord, err = s.cancelInTx(ctx, tx, o)
			return err
		}

		if !o.Status.CanTransitionTo(next) {
			return &TransitionError{From: string(o.Status), To: string(next)}
		}
		ok, err := tx.Orders.CompareAndSetStatus(ctx, o.ID, o.Status, next)
		if err != nil {
			return err
		}
		if !ok {
			return &TransitionError{From: string(o.Status), To: string(next)}
		}

		ord, err = tx.Orders.GetByID(ctx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if next == models.OrderStatusCancelled {
		s.afterCancel(ctx, ord)
	} else {
		s.log.Info("Статус заказа изменён", zap.String("order_id", ord.ID.String()), zap.String("status", string(next)))
	}
	return ord, nil
}

func (s *orderService) List(ctx context.Context, f ListFilter) ([]models.Order, int64, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}

	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}

	rf := repository.OrderListFilter{
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	}
	if role != models.RoleAdmin {
		rf.UserID = &userID
	}

	ordersPtr, total, err := s.repo.Orders.List(ctx, rf)
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*OrderDetails, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	ord, err := loadOrder(ctx, s.repo, id, userID, role)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.OrderItems.ListDetailed(ctx, ord.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetails{Order: *ord, Items: items}, nil
}

// cancelInTx: статус меняется с проверкой на прочитанное значение,
// затем каждая позиция снимка возвращается на склад.
func (s *orderService) cancelInTx(ctx context.Context, tx *repository.Repository, o *models.Order) (*models.Order, error) {
	if !o.Status.CanTransitionTo(models.OrderStatusCancelled) {
		return nil, &TransitionError{From: string(o.Status), To: string(models.OrderStatusCancelled)}
	}

	ok, err := tx.Orders.CompareAndSetStatus(ctx, o.ID, o.Status, models.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &TransitionError{From: string(o.Status), To: string(models.OrderStatusCancelled)}
	}

	for _, it := range o.Items {
		ok, err := tx.Products.RestoreStock(ctx, it.ProductID, it.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: product %s, quantity %d", ErrLedgerInconsistent, it.ProductID, it.Quantity)
		}
	}

	return tx.Orders.GetByID(ctx, o.ID)
}

func (s *orderService) afterCancel(ctx context.Context, ord *models.Order) {
	s.log.Info("Заказ отменён", zap.String("order_id", ord.ID.String()))
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderCancelled(ctx, OrderCancelledEvent{
		OrderID:     ord.ID,
		UserID:      ord.UserID,
		Items:       toItemEvents(ord.Items),
		CancelledAt: s.now(),
	}); err != nil {
		s.log.Warn("Не удалось опубликовать событие order.cancelled", zap.String("order_id", ord.ID.String()), zap.Error(err))
	}
}

// loadOrder: админ видит любой заказ, остальные только свои.
func loadOrder(ctx context.Context, repo *repository.Repository, id, userID uuid.UUID, role models.Role) (*models.Order, error) {
	var (
		ord *models.Order
		err error
	)
	if role == models.RoleAdmin {
		ord, err = repo.Orders.GetByID(ctx, id)
	} else {
		ord, err = repo.Orders.GetByIDForUser(ctx, id, userID)
	}
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func toItemEvents(items []models.OrderItem) []OrderItemEvent {
	out := make([]OrderItemEvent, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItemEvent{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			PriceAtTime: it.PriceAtTime,
		})
	}
	return out
}
