package repository

import (
	"context"
	"errors"
	"shop-service/internal/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo interface {
	// ListWithProducts возвращает корзину в порядке добавления, с актуальными ценой и остатком
	ListWithProducts(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*models.CartItem, error)
	GetByUserProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	// Upsert вставляет строку или увеличивает количество у существующей (user_id, product_id)
	Upsert(ctx context.Context, userID, productID uuid.UUID, qty int64) error
	UpdateQuantity(ctx context.Context, id uuid.UUID, qty int64) error
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) (int64, error)
	ClearForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) CartRepo { return &cartRepo{db: db} }

func (r *cartRepo) ListWithProducts(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	err := r.db.WithContext(ctx).
		Table("cart_items AS c").
		Select("c.id, c.product_id, c.quantity, p.name, p.price, p.image_url, p.stock").
		Joins("JOIN products p ON p.id = c.product_id").
		Where("c.user_id = ?", userID).
		Order("c.created_at ASC, c.id ASC").
		Scan(&lines).Error
	return lines, err
}

func (r *cartRepo) GetForUser(ctx context.Context, id, userID uuid.UUID) (*models.CartItem, error) {
	var it models.CartItem
	err := r.db.WithContext(ctx).First(&it, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &it, err
}

func (r *cartRepo) GetByUserProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var it models.CartItem
	err := r.db.WithContext(ctx).First(&it, "user_id = ? AND product_id = ?", userID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &it, err
}

func (r *cartRepo) Upsert(ctx context.Context, userID, productID uuid.UUID, qty int64) error {
	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": time.Now(),
		}),
	}).Create(item).Error
}

func (r *cartRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, qty int64) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).Updates(map[string]any{
		"quantity":   qty,
		"updated_at": time.Now(),
	}).Error
}

func (r *cartRepo) DeleteForUser(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CartItem{})
	return tx.RowsAffected, tx.Error
}

func (r *cartRepo) ClearForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{})
	return tx.RowsAffected, tx.Error
}
