package service

import (
	"context"
	"shop-service/internal/repository"

	"github.com/google/uuid"
)

type cartService struct {
	repo *repository.Repository
}

func NewCartService(repo *repository.Repository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) List(ctx context.Context) (*Cart, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, userID)
}

// Add проверяет остаток и затем пишет: между чтением и записью блокировок нет,
// окончательная проверка происходит на Checkout.
func (s *cartService) Add(ctx context.Context, productID uuid.UUID, quantity int64) (*Cart, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.repo.Cart.GetByUserProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	want := quantity
	if existing != nil {
		want += existing.Quantity
	}
	if want > product.Stock {
		return nil, &StockError{ProductID: productID}
	}

	if err := s.repo.Cart.Upsert(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.load(ctx, userID)
}

func (s *cartService) Update(ctx context.Context, itemID uuid.UUID, quantity int64) (*Cart, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.repo.Cart.GetForUser(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	if quantity == 0 {
		if _, err := s.repo.Cart.DeleteForUser(ctx, itemID, userID); err != nil {
			return nil, err
		}
		return s.load(ctx, userID)
	}

	product, err := s.repo.Products.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if quantity > product.Stock {
		return nil, &StockError{ProductID: product.ID}
	}

	if err := s.repo.Cart.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	return s.load(ctx, userID)
}

func (s *cartService) Remove(ctx context.Context, itemID uuid.UUID) (*Cart, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.Cart.DeleteForUser(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrCartItemNotFound
	}
	return s.load(ctx, userID)
}

func (s *cartService) load(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	lines, err := s.repo.Cart.ListWithProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := &Cart{Items: lines}
	for _, l := range lines {
		cart.Total += l.Price * l.Quantity
	}
	return cart, nil
}
