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

type ProductListFilter struct {
	Category *string
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, error)
	// EnsureByName создаёт товар, если товара с таким именем ещё нет (для сидов)
	EnsureByName(ctx context.Context, p *models.Product) (bool, error)
	SetStock(ctx context.Context, id uuid.UUID, stock int64) (bool, error)

	// Складской учёт (атомарно, одной командой):
	// DecrementStock: if stock >= qty then stock -= qty; sold += qty
	DecrementStock(ctx context.Context, id uuid.UUID, qty int64) (bool, error)
	// RestoreStock: if sold >= qty then stock += qty; sold -= qty
	RestoreStock(ctx context.Context, id uuid.UUID, qty int64) (bool, error)

	UpdateRatingStats(ctx context.Context, id uuid.UUID, rating float64, count int64) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}

	var list []models.Product
	err := q.Order("category ASC, name ASC").Find(&list).Error
	return list, err
}

func (r *productRepo) EnsureByName(ctx context.Context, p *models.Product) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("name = ?", p.Name).Count(&cnt).Error; err != nil {
		return false, err
	}
	if cnt > 0 {
		return false, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(p)
	return res.RowsAffected > 0, res.Error
}

func (r *productRepo) SetStock(ctx context.Context, id uuid.UUID, stock int64) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(map[string]any{
		"stock":      stock,
		"updated_at": time.Now(),
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int64) (bool, error) {
	// атомарно: stock -= qty, sold += qty, если хватает остатка
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock = stock - @q,
    sold  = sold  + @q
WHERE id = @pid
  AND stock >= @q
`, map[string]any{
		"pid": id,
		"q":   qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) RestoreStock(ctx context.Context, id uuid.UUID, qty int64) (bool, error) {
	// обратная операция: sold не может уйти в минус
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock = stock + @q,
    sold  = sold  - @q
WHERE id = @pid
  AND sold >= @q
`, map[string]any{
		"pid": id,
		"q":   qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) UpdateRatingStats(ctx context.Context, id uuid.UUID, rating float64, count int64) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(map[string]any{
		"rating":       rating,
		"rating_count": count,
	}).Error
}
