package repository

import (
	"context"
	"shop-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderItemRepo interface {
	BulkCreate(ctx context.Context, items []models.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	// ListDetailed: позиции заказа с названием, картинкой и категорией товара
	ListDetailed(ctx context.Context, orderID uuid.UUID) ([]models.OrderItemDetail, error)
	SumByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
	// ExistsCompletedPurchase: есть ли позиция с этим товаром в завершённом заказе пользователя
	ExistsCompletedPurchase(ctx context.Context, userID, productID, orderID uuid.UUID) (bool, error)
	ListRateable(ctx context.Context, userID uuid.UUID) ([]models.RateableProduct, error)
}

type orderItemRepo struct{ db *gorm.DB }

func NewOrderItemRepo(db *gorm.DB) OrderItemRepo { return &orderItemRepo{db: db} }

func (r *orderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *orderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var rows []models.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (r *orderItemRepo) ListDetailed(ctx context.Context, orderID uuid.UUID) ([]models.OrderItemDetail, error) {
	rows := []models.OrderItemDetail{}
	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.id, oi.product_id, oi.quantity, oi.price_at_time, p.name AS product_name, p.image_url, p.category").
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("oi.order_id = ?", orderID).
		Order("oi.created_at ASC, oi.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *orderItemRepo) SumByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("COALESCE(SUM(quantity * price_at_time), 0)").
		Where("order_id = ?", orderID).
		Scan(&total).Error
	return total, err
}

func (r *orderItemRepo) ExistsCompletedPurchase(ctx context.Context, userID, productID, orderID uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("oi.order_id = ? AND oi.product_id = ? AND o.user_id = ? AND o.status = ?",
			orderID, productID, userID, models.OrderStatusCompleted).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *orderItemRepo) ListRateable(ctx context.Context, userID uuid.UUID) ([]models.RateableProduct, error) {
	rows := []models.RateableProduct{}
	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select(`oi.product_id, oi.order_id, p.name, p.image_url, p.category, o.created_at AS order_date,
  EXISTS (
    SELECT 1 FROM product_ratings pr
    WHERE pr.user_id = o.user_id AND pr.product_id = oi.product_id AND pr.order_id = oi.order_id
  ) AS already_rated`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("o.user_id = ? AND o.status = ?", userID, models.OrderStatusCompleted).
		Order("o.created_at DESC, p.name ASC").
		Scan(&rows).Error
	return rows, err
}
