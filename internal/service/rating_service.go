package service

import (
	"context"
	"math"
	"shop-service/internal/models"
	"shop-service/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ratingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRatingService(repo *repository.Repository, log *zap.Logger) RatingService {
	return &ratingService{repo: repo, log: log}
}

// AddRating принимает одну оценку на (пользователь, товар, заказ) и
// пересчитывает агрегат товара по всем оценкам в той же транзакции.
func (s *ratingService) AddRating(ctx context.Context, in AddRatingInput) (*models.ProductRating, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if in.OrderID == uuid.Nil {
		return nil, invalid("orderId is required")
	}
	if in.ProductID == uuid.Nil {
		return nil, invalid("productId is required")
	}

	pr := &models.ProductRating{
		UserID:    userID,
		ProductID: in.ProductID,
		OrderID:   in.OrderID,
		Rating:    in.Rating,
		Review:    in.Review,
		CreatedAt: time.Now(),
	}

	var avg float64
	var count int64

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		p, err := tx.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}

		bought, err := tx.OrderItems.ExistsCompletedPurchase(ctx, userID, in.ProductID, in.OrderID)
		if err != nil {
			return err
		}
		if !bought {
			return ErrNotPurchased
		}

		exists, err := tx.Ratings.Exists(ctx, userID, in.ProductID, in.OrderID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateRating
		}

		if err := tx.Ratings.Create(ctx, pr); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateRating
			}
			return err
		}

		var sum int64
		sum, count, err = tx.Ratings.Aggregate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		avg = roundRating(sum, count)
		return tx.Products.UpdateRatingStats(ctx, in.ProductID, avg, count)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Добавлена оценка товара",
		zap.String("product_id", in.ProductID.String()),
		zap.Int("rating", in.Rating),
		zap.Float64("average", avg),
		zap.Int64("count", count),
	)
	return pr, nil
}

func (s *ratingService) ProductRatings(ctx context.Context, productID uuid.UUID) (*RatingSummary, error) {
	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	list, err := s.repo.Ratings.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	sum, count, err := s.repo.Ratings.Aggregate(ctx, productID)
	if err != nil {
		return nil, err
	}
	dist, err := s.repo.Ratings.Distribution(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &RatingSummary{
		Ratings:      list,
		Average:      roundRating(sum, count),
		Total:        count,
		Distribution: dist,
	}, nil
}

func (s *ratingService) Rateable(ctx context.Context) ([]models.RateableProduct, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.OrderItems.ListRateable(ctx, userID)
}

// roundRating: среднее с одним знаком после запятой, 0 при отсутствии оценок.
func roundRating(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}
