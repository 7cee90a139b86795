package repository

import (
	"context"
	"shop-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingRepo interface {
	Create(ctx context.Context, r *models.ProductRating) error
	Exists(ctx context.Context, userID, productID, orderID uuid.UUID) (bool, error)
	// Aggregate: полный пересчёт по всем оценкам товара
	Aggregate(ctx context.Context, productID uuid.UUID) (sum int64, count int64, err error)
	Distribution(ctx context.Context, productID uuid.UUID) (map[int]int64, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.RatingView, error)
}

type ratingRepo struct{ db *gorm.DB }

func NewRatingRepo(db *gorm.DB) RatingRepo { return &ratingRepo{db: db} }

func (r *ratingRepo) Create(ctx context.Context, pr *models.ProductRating) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

func (r *ratingRepo) Exists(ctx context.Context, userID, productID, orderID uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.ProductRating{}).
		Where("user_id = ? AND product_id = ? AND order_id = ?", userID, productID, orderID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *ratingRepo) Aggregate(ctx context.Context, productID uuid.UUID) (int64, int64, error) {
	type aggRow struct {
		Total int64
		Cnt   int64
	}

	var res aggRow
	err := r.db.WithContext(ctx).Model(&models.ProductRating{}).
		Select("COALESCE(SUM(rating), 0) AS total, COUNT(*) AS cnt").
		Where("product_id = ?", productID).
		Scan(&res).Error
	return res.Total, res.Cnt, err
}

func (r *ratingRepo) Distribution(ctx context.Context, productID uuid.UUID) (map[int]int64, error) {
	type distRow struct {
		Rating int
		Cnt    int64
	}

	var rows []distRow
	err := r.db.WithContext(ctx).Model(&models.ProductRating{}).
		Select("rating, COUNT(*) AS cnt").
		Where("product_id = ?", productID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[int]int64, 5)
	for star := 1; star <= 5; star++ {
		out[star] = 0
	}
	for _, row := range rows {
		out[row.Rating] = row.Cnt
	}
	return out, nil
}

func (r *ratingRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.RatingView, error) {
	rows := []models.RatingView{}
	err := r.db.WithContext(ctx).
		Table("product_ratings AS pr").
		Select("pr.id, pr.user_id, u.username, pr.order_id, pr.rating, pr.review, pr.created_at").
		Joins("JOIN users u ON u.id = pr.user_id").
		Where("pr.product_id = ?", productID).
		Order("pr.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
